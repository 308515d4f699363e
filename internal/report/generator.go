// Package report builds the pro report: an eleven-section business plan
// assembled from AI-written chapters, the curated funding catalog,
// domain availability checks, and founder matching. Generation never
// fails outright; any section that cannot be produced falls back to its
// static scaffold and is listed in Defaulted.
package report

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NoobSupreme1one/nucleus/internal/cache"
	"github.com/NoobSupreme1one/nucleus/internal/provider"
	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

const (
	reportTTL         = 7 * 24 * time.Hour
	cachePrefixReport = "pro-report"

	// TagReports invalidates every cached pro report.
	TagReports = "pro-report"

	founderMatchLimit = 5
)

// MatchSource supplies the founder-matches section.
type MatchSource interface {
	TopMatches(ctx context.Context, userID string, limit int) ([]models.FounderMatch, error)
}

// Generator assembles pro reports.
type Generator struct {
	gen     provider.Generator
	matches MatchSource
	checker AvailabilityChecker
	cache   *cache.Manager
	catalog []models.FundingOpportunity

	// now is injectable for tests.
	now func() time.Time
}

// NewGenerator wires a report generator. gen, matches and checker may
// each be nil; the affected sections default instead of failing.
func NewGenerator(gen provider.Generator, matches MatchSource, checker AvailabilityChecker, cacheManager *cache.Manager) *Generator {
	return &Generator{
		gen:     gen,
		matches: matches,
		checker: checker,
		cache:   cacheManager,
		catalog: loadFundingCatalog(),
		now:     time.Now,
	}
}

// SetNow overrides the clock. Test hook only.
func (g *Generator) SetNow(now func() time.Time) { g.now = now }

// Generate builds the full pro report for an idea, serving a cached copy
// when the same founder regenerates within the TTL.
func (g *Generator) Generate(ctx context.Context, userID string, idea models.IdeaInput) (models.ProReport, error) {
	opts := cache.Options{
		TTL:  reportTTL,
		Tags: []string{TagReports, "user:" + userID},
	}
	params := map[string]any{"user_id": userID, "idea": idea}
	return cache.GetOrSet(ctx, g.cache, cachePrefixReport, params, opts,
		func(ctx context.Context) (models.ProReport, error) {
			return g.generate(ctx, userID, idea), nil
		})
}

// generate runs all eleven sections concurrently. Each section writes
// its own field, so the only shared state is the defaulted flag array.
func (g *Generator) generate(ctx context.Context, userID string, idea models.IdeaInput) models.ProReport {
	var report models.ProReport
	defaulted := make([]bool, len(models.ReportSectionNames))

	var wg sync.WaitGroup
	section := func(index int, name string, fn func() bool) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Error().Str("section", name).Any("panic", r).Msg("Report section panicked, using default")
					defaulted[index] = true
				}
			}()
			defaulted[index] = fn()
		}()
	}

	section(0, models.SectionExecutiveSummary, func() bool {
		var d bool
		report.ExecutiveSummary, d = aiSection(ctx, g.gen, models.SectionExecutiveSummary,
			sectionPrompt(idea, "executive summary", shapeExecutiveSummary), defaultExecutiveSummary(idea))
		return d
	})
	section(1, models.SectionCompanyDescription, func() bool {
		var d bool
		report.CompanyDescription, d = aiSection(ctx, g.gen, models.SectionCompanyDescription,
			sectionPrompt(idea, "company description", shapeCompany), defaultCompanyDescription(idea))
		return d
	})
	section(2, models.SectionMarketAnalysis, func() bool {
		var d bool
		report.MarketAnalysis, d = aiSection(ctx, g.gen, models.SectionMarketAnalysis,
			sectionPrompt(idea, "market analysis", shapeMarket), defaultMarketAnalysis(idea))
		return d
	})
	section(3, models.SectionOrganization, func() bool {
		var d bool
		report.Organization, d = aiSection(ctx, g.gen, models.SectionOrganization,
			sectionPrompt(idea, "organization and team", shapeOrganization), defaultOrganization(idea))
		return d
	})
	section(4, models.SectionProductLine, func() bool {
		var d bool
		report.ProductLine, d = aiSection(ctx, g.gen, models.SectionProductLine,
			sectionPrompt(idea, "product line", shapeProductLine), defaultProductLine(idea))
		return d
	})
	section(5, models.SectionMarketingSales, func() bool {
		var d bool
		report.MarketingSales, d = aiSection(ctx, g.gen, models.SectionMarketingSales,
			sectionPrompt(idea, "marketing and sales", shapeMarketingSales), defaultMarketingSales(idea))
		return d
	})
	section(6, models.SectionFinancialProjections, func() bool {
		var d bool
		report.FinancialProjections, d = aiSection(ctx, g.gen, models.SectionFinancialProjections,
			sectionPrompt(idea, "financial projections", shapeFinancials), defaultFinancials(idea))
		return d
	})
	section(7, models.SectionFundingOpportunities, func() bool {
		report.FundingOpportunities = matchFunding(g.catalog, idea.MarketCategory, models.StageIdea)
		return false
	})
	section(8, models.SectionStartupResources, func() bool {
		report.StartupResources = startupResources
		return false
	})
	section(9, models.SectionDomainSuggestions, func() bool {
		report.DomainSuggestions = suggestDomains(ctx, g.checker, idea.Title)
		return false
	})
	section(10, models.SectionFounderMatches, func() bool {
		if g.matches == nil {
			return true
		}
		matches, err := g.matches.TopMatches(ctx, userID, founderMatchLimit)
		if err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Founder matches unavailable for report")
			return true
		}
		report.FounderMatches = matches
		return false
	})

	wg.Wait()

	for i, name := range models.ReportSectionNames {
		if defaulted[i] {
			report.Defaulted = append(report.Defaulted, name)
		}
	}
	report.GeneratedAt = g.now()

	log.Info().
		Str("title", idea.Title).
		Int("defaulted_sections", len(report.Defaulted)).
		Msg("Pro report generated")

	return report
}

// InvalidateUser drops cached reports for one founder.
func (g *Generator) InvalidateUser(userID string) int {
	return g.cache.InvalidateByTag("user:" + userID)
}
