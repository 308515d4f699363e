package models

import "time"

// MaxOverallScore is the total point budget across all rubric categories.
const MaxOverallScore = 1000.0

// GradeLevel buckets an overall score into a fixed grade.
type GradeLevel string

const (
	GradeExceptional GradeLevel = "Exceptional"
	GradeStrong      GradeLevel = "Strong"
	GradeModerate    GradeLevel = "Moderate"
	GradeWeak        GradeLevel = "Weak"
	GradePoor        GradeLevel = "Poor"
)

// Grade breakpoints. A score at or above a breakpoint earns that grade.
const (
	GradeExceptionalMin = 850.0
	GradeStrongMin      = 750.0
	GradeModerateMin    = 650.0
	GradeWeakMin        = 550.0
)

// GradeFor returns the grade for an overall score.
func GradeFor(score float64) GradeLevel {
	switch {
	case score >= GradeExceptionalMin:
		return GradeExceptional
	case score >= GradeStrongMin:
		return GradeStrong
	case score >= GradeModerateMin:
		return GradeModerate
	case score >= GradeWeakMin:
		return GradeWeak
	default:
		return GradePoor
	}
}

// Rank orders grades for comparison: Poor=0 .. Exceptional=4.
func (g GradeLevel) Rank() int {
	switch g {
	case GradeExceptional:
		return 4
	case GradeStrong:
		return 3
	case GradeModerate:
		return 2
	case GradeWeak:
		return 1
	default:
		return 0
	}
}

// gradeRecommendations are the fixed recommendation strings per grade.
var gradeRecommendations = map[GradeLevel]string{
	GradeExceptional: "Exceptional opportunity. Pursue aggressively and start building immediately.",
	GradeStrong:      "Strong potential. Validate the riskiest assumptions, then commit.",
	GradeModerate:    "Moderate potential. Sharpen the problem definition before investing heavily.",
	GradeWeak:        "Weak signal. Consider a significant pivot before proceeding.",
	GradePoor:        "Not viable as described. Rework the idea from the problem up.",
}

// RecommendationFor returns the fixed recommendation text for a grade.
func RecommendationFor(g GradeLevel) string {
	return gradeRecommendations[g]
}

// Rubric category names. Keys of EnhancedScore.Categories.
const (
	CategoryMarketOpportunity       = "Market Opportunity"
	CategoryProblemSolutionFit      = "Problem-Solution Fit"
	CategoryExecutionFeasibility    = "Execution Feasibility"
	CategoryPersonalFit             = "Personal Fit"
	CategoryFocusMomentum           = "Focus & Momentum"
	CategoryFinancialViability      = "Financial Viability"
	CategoryCustomerValidation      = "Customer Validation"
	CategoryCompetitiveIntelligence = "Competitive Intelligence"
	CategoryResourceRequirements    = "Resource Requirements"
	CategoryRiskAssessment          = "Risk Assessment"
)

// CategoryOrder is the canonical display order of rubric categories.
var CategoryOrder = []string{
	CategoryMarketOpportunity,
	CategoryProblemSolutionFit,
	CategoryExecutionFeasibility,
	CategoryPersonalFit,
	CategoryFocusMomentum,
	CategoryFinancialViability,
	CategoryCustomerValidation,
	CategoryCompetitiveIntelligence,
	CategoryResourceRequirements,
	CategoryRiskAssessment,
}

// CategoryMaxScores fixes each category's point budget. The values sum to
// exactly MaxOverallScore.
var CategoryMaxScores = map[string]float64{
	CategoryMarketOpportunity:       150,
	CategoryProblemSolutionFit:      120,
	CategoryExecutionFeasibility:    140,
	CategoryPersonalFit:             100,
	CategoryFocusMomentum:           120,
	CategoryFinancialViability:      100,
	CategoryCustomerValidation:      90,
	CategoryCompetitiveIntelligence: 80,
	CategoryResourceRequirements:    70,
	CategoryRiskAssessment:          130,
}

// ScoreCriterion is one heuristic inside a category. Score is always
// within [0, MaxScore].
type ScoreCriterion struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
}

// ScoreCategory is one of the ten rubric categories. Score equals the sum
// of its criteria scores and never exceeds MaxScore.
type ScoreCategory struct {
	Name     string           `json:"name"`
	Score    float64          `json:"score"`
	MaxScore float64          `json:"max_score"`
	Criteria []ScoreCriterion `json:"criteria"`
}

// DetailedAnalysis is the SWOT-style narrative derived from category
// scores. Opportunities, threats and next steps are fixed boilerplate;
// only strengths and weaknesses are input-derived.
type DetailedAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
	NextSteps     []string `json:"next_steps"`
}

// EnhancedScore is the full rubric result. Invariants: OverallScore equals
// the sum of category scores; every category score equals the sum of its
// criteria; MaxScore is always 1000.
type EnhancedScore struct {
	OverallScore     float64                  `json:"overall_score"`
	MaxScore         float64                  `json:"max_score"`
	GradeLevel       GradeLevel               `json:"grade_level"`
	Recommendation   string                   `json:"recommendation"`
	Categories       map[string]ScoreCategory `json:"categories"`
	DetailedAnalysis DetailedAnalysis         `json:"detailed_analysis"`
	ConfidenceLevel  float64                  `json:"confidence_level"`
	LastUpdated      time.Time                `json:"last_updated"`
}
