// Package validation orchestrates a comprehensive idea validation: the
// deterministic rubric score plus best-effort enrichment from a
// generative analyst, a search-augmented researcher, and market
// intelligence lookups. The rubric is authoritative; providers can only
// add narrative and sub-scores, never move the overall score.
package validation

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NoobSupreme1one/nucleus/internal/cache"
	"github.com/NoobSupreme1one/nucleus/internal/provider"
	"github.com/NoobSupreme1one/nucleus/internal/scoring"
	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// Cache policy for validation results.
const (
	ValidationTTL         = 24 * time.Hour
	cachePrefixValidation = "validation"

	TagValidation    = "ai-validation"
	TagComprehensive = "comprehensive"
)

// Area score budgets and the default share used when no provider
// supplied a signal for an area.
const (
	maxBusinessAreaScore    = 100.0
	maxCompetitiveAreaScore = 80.0
	maxFinancialAreaScore   = 100.0
	defaultAreaShare        = 0.6
)

// Analyzer is the generative provider surface the orchestrator needs.
type Analyzer interface {
	Analyze(ctx context.Context, input models.IdeaInput) (*models.AIAnalysis, error)
}

// Researcher is the search-augmented provider surface.
type Researcher interface {
	Validate(ctx context.Context, input models.IdeaInput) models.ResearchValidation
}

// IntelSource provides the read-only market lookups.
type IntelSource interface {
	MarketSizing(ctx context.Context, category models.MarketCategory, audience string) models.MarketIntelligence
	CompetitiveLandscape(ctx context.Context, title, solution string) models.MarketIntelligence
	TrendScan(ctx context.Context, category models.MarketCategory) models.MarketIntelligence
}

// Service runs comprehensive validations.
type Service struct {
	cache    *cache.Manager
	analyzer Analyzer
	research Researcher
	intel    IntelSource

	// now is injectable for tests.
	now func() time.Time
}

// NewService wires the orchestrator. analyzer, research and intel may
// each be nil; validation degrades per input rather than failing.
func NewService(cacheManager *cache.Manager, analyzer Analyzer, research Researcher, intel IntelSource) *Service {
	return &Service{
		cache:    cacheManager,
		analyzer: analyzer,
		research: research,
		intel:    intel,
		now:      time.Now,
	}
}

// SetNow overrides the clock. Test hook only.
func (s *Service) SetNow(now func() time.Time) { s.now = now }

// marketTag builds the per-category invalidation tag.
func marketTag(category models.MarketCategory) string {
	return "market:" + string(category)
}

// Validate produces a comprehensive validation for the idea, serving
// from cache when an identical idea was validated within the TTL.
func (s *Service) Validate(ctx context.Context, input models.IdeaInput) (models.ComprehensiveValidationResult, error) {
	input.MarketCategory = models.NormalizeCategory(string(input.MarketCategory))

	opts := cache.Options{
		TTL:  ValidationTTL,
		Tags: []string{TagValidation, marketTag(input.MarketCategory), TagComprehensive},
	}
	return cache.GetOrSet(ctx, s.cache, cachePrefixValidation, input, opts,
		func(ctx context.Context) (models.ComprehensiveValidationResult, error) {
			return s.validate(ctx, input), nil
		})
}

// intelBundle groups the three market lookups run during validation.
type intelBundle struct {
	sizing      models.MarketIntelligence
	competitive models.MarketIntelligence
	trends      models.MarketIntelligence
}

// anyResolved reports whether at least one lookup returned live data.
func (b intelBundle) anyResolved() bool {
	return !b.sizing.Pending || !b.competitive.Pending || !b.trends.Pending
}

func (b intelBundle) sources() []string {
	var out []string
	for _, intel := range []models.MarketIntelligence{b.sizing, b.competitive, b.trends} {
		out = appendUnique(out, intel.Sources)
	}
	return out
}

// validate is the uncached pipeline: score, fan out, merge.
func (s *Service) validate(ctx context.Context, input models.IdeaInput) models.ComprehensiveValidationResult {
	enhanced := scoring.Score(input, s.now())

	analysisCh := settle(ctx, "analyzer", func(ctx context.Context) (*models.AIAnalysis, error) {
		if s.analyzer == nil {
			return nil, &models.ConfigurationError{Key: "gemini.api_key", Reason: "analyzer not configured"}
		}
		return s.analyzer.Analyze(ctx, input)
	})
	researchCh := settle(ctx, "researcher", func(ctx context.Context) (models.ResearchValidation, error) {
		if s.research == nil {
			return fallbackValidation(), nil
		}
		return s.research.Validate(ctx, input), nil
	})
	intelCh := settle(ctx, "market-intel", func(ctx context.Context) (intelBundle, error) {
		return s.lookupIntel(ctx, input), nil
	})

	analysisResult := <-analysisCh
	researchResult := <-researchCh
	intelResult := <-intelCh

	var analysis *models.AIAnalysis
	if analysisResult.Err != nil {
		log.Warn().Err(analysisResult.Err).Str("title", input.Title).Msg("Generative analysis unavailable")
	} else {
		analysis = analysisResult.Value
	}

	research := researchResult.Value
	if researchResult.Err != nil {
		log.Warn().Err(researchResult.Err).Str("title", input.Title).Msg("Research validation unavailable")
		research = fallbackValidation()
	}

	intel := intelResult.Value
	if intelResult.Err != nil {
		intel = intelBundle{
			sizing:      models.MarketIntelligence{Topic: provider.TopicMarketSizing, Pending: true},
			competitive: models.MarketIntelligence{Topic: provider.TopicCompetitiveLandscape, Pending: true},
			trends:      models.MarketIntelligence{Topic: provider.TopicTrendScan, Pending: true},
		}
	}

	successes := 0
	if analysis != nil {
		successes++
	}
	if !research.Fallback {
		successes++
	}
	if intel.anyResolved() {
		successes++
	}

	result := merge(enhanced, analysis, research, intel)
	result.ConfidenceLevel = models.ConfidenceFor(successes)
	result.GeneratedAt = s.now()

	log.Info().
		Str("title", input.Title).
		Float64("overall", result.OverallScore).
		Str("confidence", string(result.ConfidenceLevel)).
		Int("research_inputs", successes).
		Msg("Comprehensive validation complete")

	return result
}

func (s *Service) lookupIntel(ctx context.Context, input models.IdeaInput) intelBundle {
	if s.intel == nil {
		return intelBundle{
			sizing:      models.MarketIntelligence{Topic: provider.TopicMarketSizing, Pending: true},
			competitive: models.MarketIntelligence{Topic: provider.TopicCompetitiveLandscape, Pending: true},
			trends:      models.MarketIntelligence{Topic: provider.TopicTrendScan, Pending: true},
		}
	}

	sizingCh := settle(ctx, "market-sizing", func(ctx context.Context) (models.MarketIntelligence, error) {
		return s.intel.MarketSizing(ctx, input.MarketCategory, input.TargetAudience), nil
	})
	competitiveCh := settle(ctx, "competitive-landscape", func(ctx context.Context) (models.MarketIntelligence, error) {
		return s.intel.CompetitiveLandscape(ctx, input.Title, input.SolutionDescription), nil
	})
	trendsCh := settle(ctx, "trend-scan", func(ctx context.Context) (models.MarketIntelligence, error) {
		return s.intel.TrendScan(ctx, input.MarketCategory), nil
	})

	return intelBundle{
		sizing:      (<-sizingCh).Value,
		competitive: (<-competitiveCh).Value,
		trends:      (<-trendsCh).Value,
	}
}

// fallbackValidation mirrors the research provider's own neutral result
// for the case where no researcher is wired at all.
func fallbackValidation() models.ResearchValidation {
	return models.ResearchValidation{
		Score:          500,
		MarketScore:    200,
		TechnicalScore: 150,
		BusinessScore:  150,
		Fallback:       true,
		AnalysisReport: models.ResearchReport{
			OverallFeedback: "Live research was unavailable for this validation. Scores shown are neutral placeholders.",
		},
	}
}

// merge folds provider output around the authoritative rubric result.
// Where both providers scored an area, the higher (rescaled) value wins;
// where neither did, the area defaults to 60% of its budget.
func merge(enhanced models.EnhancedScore, analysis *models.AIAnalysis, research models.ResearchValidation, intel intelBundle) models.ComprehensiveValidationResult {
	result := models.ComprehensiveValidationResult{
		Enhanced:        enhanced,
		OverallScore:    enhanced.OverallScore,
		Recommendations: []string{enhanced.Recommendation},
		Citations:       research.AnalysisReport.Citations,
		ResearchSources: intel.sources(),
	}

	var geminiMarket, geminiTechnical float64
	marketSummary := ""
	technicalSummary := ""
	if analysis != nil {
		geminiMarket = analysis.MarketAnalysis.Score
		geminiTechnical = analysis.TechnicalFeasibility.Score
		marketSummary = analysis.MarketAnalysis.MarketSize
		technicalSummary = analysis.TechnicalFeasibility.Complexity
		result.Recommendations = appendUnique(result.Recommendations, analysis.Recommendations)
	}

	var researchMarket, researchTechnical, researchBusiness float64
	if !research.Fallback {
		researchMarket = research.MarketScore * models.MaxMarketAnalysisScore / models.MaxResearchMarketScore
		researchTechnical = research.TechnicalScore * models.MaxTechnicalFeasibilityScore / models.MaxResearchTechnicalScore
		researchBusiness = research.BusinessScore * maxBusinessAreaScore / models.MaxResearchBusinessScore
		result.Recommendations = appendUnique(result.Recommendations, research.AnalysisReport.Recommendations)
	}
	if summary := research.AnalysisReport.MarketValidation; summary != "" {
		marketSummary = summary
	}
	if summary := research.AnalysisReport.TechnicalFeasibility; summary != "" {
		technicalSummary = summary
	}

	result.Market = areaReport(marketSummary, models.MaxMarketAnalysisScore, geminiMarket, researchMarket)
	result.Technical = areaReport(technicalSummary, models.MaxTechnicalFeasibilityScore, geminiTechnical, researchTechnical)
	result.Business = areaReport(research.AnalysisReport.BusinessModel, maxBusinessAreaScore, researchBusiness)

	competitiveSummary := intel.competitive.Summary
	if intel.competitive.Pending && analysis != nil {
		competitiveSummary = analysis.MarketAnalysis.Competition
	}
	result.Competitive = areaReport(competitiveSummary, maxCompetitiveAreaScore)
	result.Financial = areaReport(research.AnalysisReport.OverallFeedback, maxFinancialAreaScore)

	return result
}

// areaReport picks the strongest available signal for an area, falling
// back to the default share of its budget when every candidate is zero.
func areaReport(summary string, max float64, candidates ...float64) models.AreaReport {
	score := 0.0
	for _, c := range candidates {
		if c > score {
			score = c
		}
	}
	if score == 0 {
		score = max * defaultAreaShare
	}
	if summary == "" {
		summary = "No provider signal for this area; score reflects a neutral default."
	}
	return models.AreaReport{Summary: summary, Score: score, MaxScore: max}
}

// InvalidateCategory drops every cached validation for a market
// category, e.g. after a rubric-table change.
func (s *Service) InvalidateCategory(category models.MarketCategory) int {
	return s.cache.InvalidateByTag(marketTag(category))
}

// InvalidateAll drops every cached validation.
func (s *Service) InvalidateAll() int {
	return s.cache.InvalidateByTag(TagValidation)
}

func appendUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extra {
		if s != "" && !seen[s] {
			base = append(base, s)
			seen[s] = true
		}
	}
	return base
}
