package report

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/NoobSupreme1one/nucleus/internal/cache"
	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// scriptedGenerator answers section prompts, failing those whose prompt
// mentions a refused section name.
type scriptedGenerator struct {
	refuse    []string
	responses map[string]string
	calls     atomic.Int64
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls.Add(1)
	for _, name := range g.refuse {
		if strings.Contains(prompt, name) {
			return "", errors.New("refused")
		}
	}
	for key, response := range g.responses {
		if strings.Contains(prompt, key) {
			return response, nil
		}
	}
	return "no json in this response", nil
}

type stubMatches struct {
	matches []models.FounderMatch
	err     error
}

func (m *stubMatches) TopMatches(ctx context.Context, userID string, limit int) ([]models.FounderMatch, error) {
	return m.matches, m.err
}

// ReportSuite exercises full report assembly and its fallbacks.
type ReportSuite struct {
	suite.Suite
	manager *cache.Manager
	now     time.Time
}

func (s *ReportSuite) SetupTest() {
	s.manager = cache.NewManager(cache.Config{MaxEntries: 100, SweepInterval: time.Hour})
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ReportSuite) TearDownTest() {
	s.manager.Close()
}

func TestReportSuite(t *testing.T) {
	suite.Run(t, new(ReportSuite))
}

func (s *ReportSuite) newGenerator(gen *scriptedGenerator, matches MatchSource, checker AvailabilityChecker) *Generator {
	var g *Generator
	if gen == nil {
		g = NewGenerator(nil, matches, checker, s.manager)
	} else {
		g = NewGenerator(gen, matches, checker, s.manager)
	}
	g.SetNow(func() time.Time { return s.now })
	return g
}

func reportIdea() models.IdeaInput {
	return models.IdeaInput{
		Title:               "PlantPal",
		MarketCategory:      models.CategorySaaS,
		ProblemDescription:  "Gardeners forget watering schedules",
		SolutionDescription: "App sends automated reminders",
		TargetAudience:      "Hobby gardeners",
	}
}

// =============================================================================
// GOOD SCENARIOS - Expected normal operations
// =============================================================================

func (s *ReportSuite) TestGenerate_AISectionsParse() {
	gen := &scriptedGenerator{responses: map[string]string{
		"executive summary": `{"summary": "PlantPal keeps plants alive.", "mission_statement": "No plant left behind.", "keys_to_success": ["Retention"]}`,
	}}
	g := s.newGenerator(gen, &stubMatches{matches: []models.FounderMatch{{MatchScore: 90}}}, nil)

	report, err := g.Generate(context.Background(), "u-1", reportIdea())
	s.Require().NoError(err)

	s.Equal("PlantPal keeps plants alive.", report.ExecutiveSummary.Summary)
	s.NotContains(report.Defaulted, models.SectionExecutiveSummary)

	// The other AI sections got non-JSON responses and defaulted.
	s.Contains(report.Defaulted, models.SectionCompanyDescription)
	s.NotEmpty(report.CompanyDescription.Overview, "defaulted sections still carry content")

	s.Len(report.FounderMatches, 1)
	s.NotContains(report.Defaulted, models.SectionFounderMatches)
	s.Equal(s.now, report.GeneratedAt)
}

func (s *ReportSuite) TestGenerate_ResultIsCached() {
	gen := &scriptedGenerator{}
	g := s.newGenerator(gen, nil, nil)

	_, err := g.Generate(context.Background(), "u-1", reportIdea())
	s.Require().NoError(err)
	first := gen.calls.Load()
	s.Equal(int64(7), first, "seven AI sections prompt once each")

	_, err = g.Generate(context.Background(), "u-1", reportIdea())
	s.Require().NoError(err)
	s.Equal(first, gen.calls.Load(), "second generation must be served from cache")

	s.Positive(g.InvalidateUser("u-1"))
	_, err = g.Generate(context.Background(), "u-1", reportIdea())
	s.Require().NoError(err)
	s.Greater(gen.calls.Load(), first)
}

func (s *ReportSuite) TestMatchFunding_SaaSIdeaStage() {
	matches := matchFunding(loadFundingCatalog(), models.CategorySaaS, models.StageIdea)

	s.Require().NotEmpty(matches)
	s.LessOrEqual(len(matches), maxFundingMatches)

	// Full marks: category fit, idea stage, reachable check size,
	// workable deadline.
	s.Equal(100, matches[0].Score)
	for i := 1; i < len(matches); i++ {
		s.LessOrEqual(matches[i].Score, matches[i-1].Score, "matches sort best first")
	}
	for _, m := range matches {
		s.Contains(m.Opportunity.Categories, models.CategorySaaS)
	}
}

func (s *ReportSuite) TestMatchFunding_CategoryMismatchExcluded() {
	matches := matchFunding(loadFundingCatalog(), models.CategoryEcommerce, models.StageIdea)

	for _, m := range matches {
		s.NotEqual("Rock Health Seed Fund", m.Opportunity.Name,
			"healthtech-only fund must not match an ecommerce idea")
	}
}

func (s *ReportSuite) TestSuggestDomains_RDAPVerdicts() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only plantpal.com is taken.
		if r.URL.Path == "/domain/plantpal.com" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	suggestions := suggestDomains(context.Background(), NewRDAPChecker(server.URL), "PlantPal")

	s.Require().NotEmpty(suggestions)
	s.LessOrEqual(len(suggestions), maxDomainSuggestions)

	for _, sug := range suggestions {
		s.Equal(sourceRDAP, sug.Source)
		if sug.Domain == "plantpal.com" {
			s.False(sug.Available)
		}
	}
	s.True(suggestions[0].Available, "available domains sort first")
	s.True(strings.HasSuffix(suggestions[0].Domain, ".com"), "among available, .com sorts first")
}

// =============================================================================
// EDGE CASES - Provider refusals, missing wiring, degraded sections
// =============================================================================

func (s *ReportSuite) TestGenerate_FiveSectionsRefusedReportStillComplete() {
	gen := &scriptedGenerator{refuse: []string{
		"executive summary", "company description", "market analysis", "organization and team", "product line",
	}}
	g := s.newGenerator(gen, &stubMatches{matches: []models.FounderMatch{{MatchScore: 80}}}, nil)

	report, err := g.Generate(context.Background(), "u-1", reportIdea())
	s.Require().NoError(err)

	// Refused sections default; nothing is missing from the document.
	s.Contains(report.Defaulted, models.SectionExecutiveSummary)
	s.Contains(report.Defaulted, models.SectionProductLine)
	s.NotEmpty(report.ExecutiveSummary.Summary)
	s.NotEmpty(report.ProductLine.Description)
	s.NotEmpty(report.FundingOpportunities)
	s.NotEmpty(report.StartupResources)
	s.NotEmpty(report.DomainSuggestions)
	s.Len(report.FounderMatches, 1)
}

func (s *ReportSuite) TestGenerate_NoGeneratorAllAIDefaulted() {
	g := s.newGenerator(nil, nil, nil)

	report, err := g.Generate(context.Background(), "u-1", reportIdea())
	s.Require().NoError(err)

	// Seven AI sections plus founder matches (no match source wired).
	s.Len(report.Defaulted, 8)
	s.Contains(report.Defaulted, models.SectionFounderMatches)
	s.NotContains(report.Defaulted, models.SectionFundingOpportunities)
	s.NotContains(report.Defaulted, models.SectionDomainSuggestions)
	s.NotEmpty(report.DomainSuggestions, "domains fall back to the deterministic heuristic")
	for _, sug := range report.DomainSuggestions {
		s.Equal(sourceHeuristic, sug.Source)
	}
}

func (s *ReportSuite) TestGenerate_MatchLookupFailureDefaultsSection() {
	g := s.newGenerator(&scriptedGenerator{}, &stubMatches{err: errors.New("store down")}, nil)

	report, err := g.Generate(context.Background(), "u-1", reportIdea())
	s.Require().NoError(err)

	s.Contains(report.Defaulted, models.SectionFounderMatches)
	s.Empty(report.FounderMatches)
}

func (s *ReportSuite) TestSuggestDomains_HeuristicIsDeterministic() {
	first := suggestDomains(context.Background(), nil, "PlantPal")
	second := suggestDomains(context.Background(), nil, "PlantPal")
	s.Equal(first, second)
}

func (s *ReportSuite) TestSuggestDomains_EmptyTitle() {
	s.Empty(suggestDomains(context.Background(), nil, "  "))
}

func TestCandidateNames(t *testing.T) {
	names := candidateNames("Plant Pal!")
	want := []string{"plantpal", "getplantpal", "plantpalapp", "plantpalhq"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLoadFundingCatalog(t *testing.T) {
	catalog := loadFundingCatalog()
	if len(catalog) < 5 {
		t.Fatalf("catalog has %d entries, want at least 5", len(catalog))
	}
	for _, opp := range catalog {
		if opp.Name == "" || opp.URL == "" {
			t.Errorf("catalog entry missing name or url: %+v", opp)
		}
		if len(opp.Categories) == 0 || len(opp.Stages) == 0 {
			t.Errorf("catalog entry %s missing categories or stages", opp.Name)
		}
	}
}
