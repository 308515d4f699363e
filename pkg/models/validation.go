package models

import "time"

// Confidence reflects how many independent research inputs backed a
// comprehensive validation.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConfidenceFor derives the confidence level from the number of
// successful research inputs (generative provider, research provider,
// market intelligence).
func ConfidenceFor(successes int) Confidence {
	switch {
	case successes >= 3:
		return ConfidenceHigh
	case successes == 2:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Sub-score budgets for the generative provider's analysis.
const (
	MaxMarketAnalysisScore       = 150.0
	MaxTechnicalFeasibilityScore = 140.0
)

// Component budgets for the research provider's score. Their sum is the
// provider's overall score budget (1000).
const (
	MaxResearchMarketScore    = 400.0
	MaxResearchTechnicalScore = 300.0
	MaxResearchBusinessScore  = 300.0
)

// MarketAnalysis is the generative provider's market assessment.
type MarketAnalysis struct {
	MarketSize  string  `json:"market_size"`
	Competition string  `json:"competition"`
	Trends      string  `json:"trends"`
	Score       float64 `json:"score"`
}

// TechnicalFeasibility is the generative provider's build assessment.
type TechnicalFeasibility struct {
	Complexity      string  `json:"complexity"`
	ResourcesNeeded string  `json:"resources_needed"`
	TimeToMarket    string  `json:"time_to_market"`
	Score           float64 `json:"score"`
}

// AIAnalysis is the parsed, clamped result of a generative-provider
// validation call (Provider A).
type AIAnalysis struct {
	OverallScore         float64              `json:"overall_score"`
	MarketAnalysis       MarketAnalysis       `json:"market_analysis"`
	TechnicalFeasibility TechnicalFeasibility `json:"technical_feasibility"`
	Recommendations      []string             `json:"recommendations"`
	DetailedAnalysis     string               `json:"detailed_analysis"`
}

// ResearchReport is the narrative portion of a research-provider result.
type ResearchReport struct {
	MarketValidation     string   `json:"market_validation"`
	TechnicalFeasibility string   `json:"technical_feasibility"`
	BusinessModel        string   `json:"business_model"`
	OverallFeedback      string   `json:"overall_feedback"`
	Recommendations      []string `json:"recommendations"`
	Citations            []string `json:"citations"`
}

// ResearchValidation is the search-augmented provider's result
// (Provider B). Score is the sum of the three component scores. Fallback
// marks the documented neutral result returned when the provider failed.
type ResearchValidation struct {
	Score          float64        `json:"score"`
	MarketScore    float64        `json:"market_score"`
	TechnicalScore float64        `json:"technical_score"`
	BusinessScore  float64        `json:"business_score"`
	AnalysisReport ResearchReport `json:"analysis_report"`
	Fallback       bool           `json:"fallback"`
}

// MarketIntelligence is one read-only market lookup (sizing, competitive
// landscape, or trend scan). Pending means no research credentials were
// configured and manual research is needed.
type MarketIntelligence struct {
	Topic   string   `json:"topic"`
	Pending bool     `json:"pending"`
	Summary string   `json:"summary"`
	Sources []string `json:"sources"`
}

// AreaReport is one merged sub-report of a comprehensive validation.
type AreaReport struct {
	Summary  string  `json:"summary"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
}

// ComprehensiveValidationResult combines the rubric score with merged
// provider output. Enhanced.OverallScore is authoritative; provider
// overall scores never override it.
type ComprehensiveValidationResult struct {
	Enhanced        EnhancedScore `json:"enhanced"`
	OverallScore    float64       `json:"overall_score"`
	Market          AreaReport    `json:"market"`
	Technical       AreaReport    `json:"technical"`
	Business        AreaReport    `json:"business"`
	Competitive     AreaReport    `json:"competitive"`
	Financial       AreaReport    `json:"financial"`
	Recommendations []string      `json:"recommendations"`
	Citations       []string      `json:"citations"`
	ResearchSources []string      `json:"research_sources"`
	ConfidenceLevel Confidence    `json:"confidence_level"`
	GeneratedAt     time.Time     `json:"generated_at"`
}
