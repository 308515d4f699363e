package validation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/NoobSupreme1one/nucleus/internal/cache"
	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

type stubAnalyzer struct {
	analysis *models.AIAnalysis
	err      error
	panics   bool
	calls    atomic.Int64
}

func (a *stubAnalyzer) Analyze(ctx context.Context, input models.IdeaInput) (*models.AIAnalysis, error) {
	a.calls.Add(1)
	if a.panics {
		panic("analyzer exploded")
	}
	return a.analysis, a.err
}

type stubResearcher struct {
	result models.ResearchValidation
	calls  atomic.Int64
}

func (r *stubResearcher) Validate(ctx context.Context, input models.IdeaInput) models.ResearchValidation {
	r.calls.Add(1)
	return r.result
}

type stubIntel struct {
	pending bool
}

func (i *stubIntel) intel(topic string) models.MarketIntelligence {
	if i.pending {
		return models.MarketIntelligence{Topic: topic, Pending: true}
	}
	return models.MarketIntelligence{Topic: topic, Summary: "live " + topic, Sources: []string{"https://src.example/" + topic}}
}

func (i *stubIntel) MarketSizing(ctx context.Context, category models.MarketCategory, audience string) models.MarketIntelligence {
	return i.intel("market-sizing")
}

func (i *stubIntel) CompetitiveLandscape(ctx context.Context, title, solution string) models.MarketIntelligence {
	return i.intel("competitive-landscape")
}

func (i *stubIntel) TrendScan(ctx context.Context, category models.MarketCategory) models.MarketIntelligence {
	return i.intel("trend-scan")
}

// OrchestratorSuite exercises the validation fan-out and merge.
type OrchestratorSuite struct {
	suite.Suite
	manager *cache.Manager
	now     time.Time
}

func (s *OrchestratorSuite) SetupTest() {
	s.manager = cache.NewManager(cache.Config{MaxEntries: 100, SweepInterval: time.Hour})
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *OrchestratorSuite) TearDownTest() {
	s.manager.Close()
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) newService(analyzer Analyzer, research Researcher, intel IntelSource) *Service {
	svc := NewService(s.manager, analyzer, research, intel)
	svc.SetNow(func() time.Time { return s.now })
	return svc
}

func validationInput() models.IdeaInput {
	return models.IdeaInput{
		Title:               "PlantPal",
		MarketCategory:      models.CategorySaaS,
		ProblemDescription:  "Gardeners forget watering schedules and plants die.",
		SolutionDescription: "A simple app that sends automated watering reminders.",
		TargetAudience:      "Hobby gardeners",
	}
}

func goodAnalysis() *models.AIAnalysis {
	return &models.AIAnalysis{
		OverallScore:         900,
		MarketAnalysis:       models.MarketAnalysis{MarketSize: "Large and growing", Competition: "Fragmented", Score: 120},
		TechnicalFeasibility: models.TechnicalFeasibility{Complexity: "Low", Score: 110},
		Recommendations:      []string{"Launch a beta"},
	}
}

func goodResearch() models.ResearchValidation {
	return models.ResearchValidation{
		Score:          760,
		MarketScore:    320,
		TechnicalScore: 240,
		BusinessScore:  200,
		AnalysisReport: models.ResearchReport{
			MarketValidation: "Demand confirmed by search volume",
			BusinessModel:    "Subscription works here",
			Recommendations:  []string{"Price at $5/month"},
			Citations:        []string{"https://cite.example/1"},
		},
	}
}

// =============================================================================
// GOOD SCENARIOS - Expected normal operations
// =============================================================================

func (s *OrchestratorSuite) TestValidate_AllInputsSucceed() {
	svc := s.newService(&stubAnalyzer{analysis: goodAnalysis()}, &stubResearcher{result: goodResearch()}, &stubIntel{})

	result, err := svc.Validate(context.Background(), validationInput())
	s.Require().NoError(err)

	s.Equal(models.ConfidenceHigh, result.ConfidenceLevel)
	s.Equal(result.Enhanced.OverallScore, result.OverallScore,
		"rubric stays authoritative even when a provider reports 900")
	s.NotEqual(900.0, result.OverallScore)

	// Market: max(gemini 120, research 320*150/400=120) = 120.
	s.Equal(120.0, result.Market.Score)
	s.Equal(150.0, result.Market.MaxScore)
	// Technical: max(gemini 110, research 240*140/300=112) = 112.
	s.Equal(112.0, result.Technical.Score)
	// Business: 200*100/300.
	s.InDelta(66.66, result.Business.Score, 0.01)

	s.Contains(result.Recommendations, "Launch a beta")
	s.Contains(result.Recommendations, "Price at $5/month")
	s.Equal([]string{"https://cite.example/1"}, result.Citations)
	s.Len(result.ResearchSources, 3)
	s.Equal(s.now, result.GeneratedAt)
}

func (s *OrchestratorSuite) TestValidate_ResultIsCached() {
	analyzer := &stubAnalyzer{analysis: goodAnalysis()}
	researcher := &stubResearcher{result: goodResearch()}
	svc := s.newService(analyzer, researcher, &stubIntel{})

	_, err := svc.Validate(context.Background(), validationInput())
	s.Require().NoError(err)
	_, err = svc.Validate(context.Background(), validationInput())
	s.Require().NoError(err)

	s.Equal(int64(1), analyzer.calls.Load(), "second call must be served from cache")
	s.Equal(int64(1), researcher.calls.Load())
}

func (s *OrchestratorSuite) TestInvalidateCategory_ForcesRecompute() {
	analyzer := &stubAnalyzer{analysis: goodAnalysis()}
	svc := s.newService(analyzer, &stubResearcher{result: goodResearch()}, &stubIntel{})

	_, err := svc.Validate(context.Background(), validationInput())
	s.Require().NoError(err)

	removed := svc.InvalidateCategory(models.CategorySaaS)
	s.Equal(1, removed)

	_, err = svc.Validate(context.Background(), validationInput())
	s.Require().NoError(err)
	s.Equal(int64(2), analyzer.calls.Load())
}

func (s *OrchestratorSuite) TestValidate_NormalizesCategory() {
	analyzer := &stubAnalyzer{analysis: goodAnalysis()}
	svc := s.newService(analyzer, &stubResearcher{result: goodResearch()}, &stubIntel{})

	input := validationInput()
	input.MarketCategory = models.MarketCategory("  SaaS ")
	_, err := svc.Validate(context.Background(), input)
	s.Require().NoError(err)

	s.Equal(1, svc.InvalidateCategory(models.CategorySaaS))
}

// =============================================================================
// EDGE CASES - Degraded inputs, failures, panics
// =============================================================================

func (s *OrchestratorSuite) TestValidate_AnalyzerFailsOthersSurvive() {
	svc := s.newService(
		&stubAnalyzer{err: &models.ProviderCallError{Provider: "gemini", Err: context.DeadlineExceeded}},
		&stubResearcher{result: goodResearch()},
		&stubIntel{},
	)

	result, err := svc.Validate(context.Background(), validationInput())
	s.Require().NoError(err)

	s.Equal(models.ConfidenceMedium, result.ConfidenceLevel, "two of three inputs succeeded")
	s.Equal(result.Enhanced.OverallScore, result.OverallScore)
	s.Equal(120.0, result.Market.Score, "research alone still feeds the market area")
}

func (s *OrchestratorSuite) TestValidate_ResearchFallsBackConfidenceDrops() {
	svc := s.newService(
		&stubAnalyzer{analysis: goodAnalysis()},
		&stubResearcher{result: models.ResearchValidation{Score: 500, MarketScore: 200, TechnicalScore: 150, BusinessScore: 150, Fallback: true}},
		&stubIntel{pending: true},
	)

	result, err := svc.Validate(context.Background(), validationInput())
	s.Require().NoError(err)

	s.Equal(models.ConfidenceLow, result.ConfidenceLevel, "only the analyzer succeeded")
	s.Equal(result.Enhanced.OverallScore, result.OverallScore)
	s.Equal(120.0, result.Market.Score, "fallback research scores never enter the merge")
	s.Equal(60.0, result.Business.Score, "unsignaled area defaults to 60% of budget")
}

func (s *OrchestratorSuite) TestValidate_EverythingUnconfigured() {
	svc := s.newService(nil, nil, nil)

	result, err := svc.Validate(context.Background(), validationInput())
	s.Require().NoError(err)

	s.Equal(models.ConfidenceLow, result.ConfidenceLevel)
	s.Equal(result.Enhanced.OverallScore, result.OverallScore)
	s.Equal(0.6*150, result.Market.Score)
	s.Equal(0.6*140, result.Technical.Score)
	s.Empty(result.Citations)
	s.NotEmpty(result.Market.Summary)
}

func (s *OrchestratorSuite) TestValidate_AnalyzerPanicIsContained() {
	svc := s.newService(&stubAnalyzer{panics: true}, &stubResearcher{result: goodResearch()}, &stubIntel{})

	result, err := svc.Validate(context.Background(), validationInput())
	s.Require().NoError(err)

	s.Equal(models.ConfidenceMedium, result.ConfidenceLevel)
	s.Positive(result.OverallScore)
}

func TestAreaReport_Defaults(t *testing.T) {
	report := areaReport("", 100)
	if report.Score != 60 {
		t.Errorf("default score = %v, want 60", report.Score)
	}
	if report.Summary == "" {
		t.Error("default summary must not be empty")
	}

	report = areaReport("summary", 100, 30, 80, 50)
	if report.Score != 80 {
		t.Errorf("max candidate = %v, want 80", report.Score)
	}
}
