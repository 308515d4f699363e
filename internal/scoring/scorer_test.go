package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// ScorerSuite is a test suite for the rubric scorer.
type ScorerSuite struct {
	suite.Suite
	now time.Time
}

func (s *ScorerSuite) SetupTest() {
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestScorerSuite(t *testing.T) {
	suite.Run(t, new(ScorerSuite))
}

func plantPal() models.IdeaInput {
	return models.IdeaInput{
		Title:               "PlantPal",
		MarketCategory:      models.CategorySaaS,
		ProblemDescription:  "Hobby gardeners forget watering schedules and their plants die. This happens constantly and is painful for people who love their plants.",
		SolutionDescription: "A simple mobile app that sends automated watering reminders based on each plant type, with a subscription for premium plant care guides.",
		TargetAudience:      "Hobby gardeners with houseplants",
	}
}

// =============================================================================
// GOOD SCENARIOS - Expected normal operations
// =============================================================================

func (s *ScorerSuite) TestScore_IsDeterministic() {
	input := plantPal()

	first := Score(input, s.now)
	second := Score(input, s.now)

	s.Equal(first, second, "identical input and clock must produce identical results")
}

func (s *ScorerSuite) TestScore_OverallEqualsCategorySum() {
	result := Score(plantPal(), s.now)

	sum := 0.0
	for _, cat := range result.Categories {
		sum += cat.Score
	}
	s.InDelta(sum, result.OverallScore, 1e-9)
}

func (s *ScorerSuite) TestScore_CategoryEqualsCriteriaSum() {
	result := Score(plantPal(), s.now)

	for name, cat := range result.Categories {
		sum := 0.0
		for _, c := range cat.Criteria {
			s.GreaterOrEqual(c.Score, 0.0, "%s / %s", name, c.Name)
			s.LessOrEqual(c.Score, c.MaxScore+1e-9, "%s / %s", name, c.Name)
			sum += c.Score
		}
		s.InDelta(sum, cat.Score, 1e-9, name)
		s.LessOrEqual(cat.Score, cat.MaxScore+1e-9, name)
	}
}

func (s *ScorerSuite) TestScore_CategoryBudgets() {
	result := Score(plantPal(), s.now)

	s.Len(result.Categories, 10)
	s.Equal(models.MaxOverallScore, result.MaxScore)

	budgets := map[string]float64{
		models.CategoryMarketOpportunity:       150,
		models.CategoryProblemSolutionFit:      120,
		models.CategoryExecutionFeasibility:    140,
		models.CategoryPersonalFit:             100,
		models.CategoryFocusMomentum:           120,
		models.CategoryFinancialViability:      100,
		models.CategoryCustomerValidation:      90,
		models.CategoryCompetitiveIntelligence: 80,
		models.CategoryResourceRequirements:    70,
		models.CategoryRiskAssessment:          130,
	}
	totalBudget := 0.0
	for name, want := range budgets {
		cat, ok := result.Categories[name]
		s.Require().True(ok, name)
		s.Equal(want, cat.MaxScore, name)
		totalBudget += cat.MaxScore
	}
	s.Equal(models.MaxOverallScore, totalBudget)
}

func (s *ScorerSuite) TestScore_PlantPalLandsInSaneRange() {
	result := Score(plantPal(), s.now)

	// A clearly described consumer SaaS idea should land mid-rubric, not
	// at either extreme.
	s.Greater(result.OverallScore, 400.0)
	s.Less(result.OverallScore, 900.0)
	s.Equal(models.GradeFor(result.OverallScore), result.GradeLevel)
	s.Equal(models.RecommendationFor(result.GradeLevel), result.Recommendation)
	s.Equal(70.0, result.ConfidenceLevel)
	s.Equal(s.now, result.LastUpdated)
}

func (s *ScorerSuite) TestScore_RicherTextScoresHigher() {
	weak := models.IdeaInput{
		Title:               "App",
		MarketCategory:      models.CategoryOther,
		ProblemDescription:  "Problems exist.",
		SolutionDescription: "An app.",
		TargetAudience:      "People",
	}

	s.Greater(Score(plantPal(), s.now).OverallScore, Score(weak, s.now).OverallScore)
}

func (s *ScorerSuite) TestScore_UnknownCategoryFallsBackToOther() {
	input := plantPal()
	input.MarketCategory = models.MarketCategory("biotech")

	other := plantPal()
	other.MarketCategory = models.CategoryOther

	s.Equal(Score(other, s.now).OverallScore, Score(input, s.now).OverallScore)
}

func (s *ScorerSuite) TestGradeBoundaries() {
	cases := []struct {
		score float64
		want  models.GradeLevel
	}{
		{1000, models.GradeExceptional},
		{850, models.GradeExceptional},
		{849.99, models.GradeStrong},
		{750, models.GradeStrong},
		{749.99, models.GradeModerate},
		{650, models.GradeModerate},
		{649.99, models.GradeWeak},
		{550, models.GradeWeak},
		{549.99, models.GradePoor},
		{0, models.GradePoor},
	}
	for _, tc := range cases {
		s.Equal(tc.want, models.GradeFor(tc.score), "score %v", tc.score)
	}

	// Monotonic: a higher score never earns a lower grade.
	prev := models.GradeFor(0)
	for score := 0.0; score <= 1000; score += 25 {
		g := models.GradeFor(score)
		s.GreaterOrEqual(g.Rank(), prev.Rank(), "score %v", score)
		prev = g
	}
}

// =============================================================================
// EDGE CASES - Degenerate input and narrative derivation
// =============================================================================

func (s *ScorerSuite) TestScore_EmptyInput() {
	result := Score(models.IdeaInput{}, s.now)

	s.GreaterOrEqual(result.OverallScore, 0.0)
	s.LessOrEqual(result.OverallScore, models.MaxOverallScore)
	s.Len(result.Categories, 10)
	s.NotEmpty(result.DetailedAnalysis.NextSteps)
}

func (s *ScorerSuite) TestAnalyze_Thresholds() {
	categories := map[string]models.ScoreCategory{}
	for _, name := range models.CategoryOrder {
		categories[name] = models.ScoreCategory{
			Name:     name,
			Score:    models.CategoryMaxScores[name] * 0.6,
			MaxScore: models.CategoryMaxScores[name],
		}
	}
	// One strength at exactly 80%, one weakness at exactly 40%.
	categories[models.CategoryMarketOpportunity] = models.ScoreCategory{
		Name: models.CategoryMarketOpportunity, Score: 120, MaxScore: 150,
	}
	categories[models.CategoryRiskAssessment] = models.ScoreCategory{
		Name: models.CategoryRiskAssessment, Score: 52, MaxScore: 130,
	}

	analysis := analyze(categories)

	s.Require().Len(analysis.Strengths, 1)
	s.Contains(analysis.Strengths[0], models.CategoryMarketOpportunity)
	s.Require().Len(analysis.Weaknesses, 1)
	s.Contains(analysis.Weaknesses[0], models.CategoryRiskAssessment)
	s.Len(analysis.Opportunities, 3)
	s.Len(analysis.Threats, 2)
	s.Len(analysis.NextSteps, 3)
}

func TestBandScore(t *testing.T) {
	cases := []struct {
		text string
		min  int
		max  int
		want float64
	}{
		{"", 3, 40, 0},
		{"one two", 4, 40, 5},
		{"one two three four", 3, 4, 10},
		{"a b c d e f", 2, 5, 6},
	}
	for _, tc := range cases {
		if got := bandScore(tc.text, tc.min, tc.max); got != tc.want {
			t.Errorf("bandScore(%q, %d, %d) = %v, want %v", tc.text, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestKeywordScore(t *testing.T) {
	if got := keywordScore("urgent and urgent", 4, 1.5, "urgent"); got != 7 {
		t.Errorf("keywordScore = %v, want 7", got)
	}
	if got := keywordScore("nothing relevant", 4, 1.5, "urgent"); got != 4 {
		t.Errorf("keywordScore base = %v, want 4", got)
	}
	if got := keywordScore("urgent urgent urgent urgent urgent", 4, 2, "urgent"); got != 10 {
		t.Errorf("keywordScore clamp = %v, want 10", got)
	}
}
