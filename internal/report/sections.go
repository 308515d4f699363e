package report

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/NoobSupreme1one/nucleus/internal/privacy"
	"github.com/NoobSupreme1one/nucleus/internal/provider"
	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// aiSection prompts the generator for one typed section. Any failure,
// from a missing generator to unparseable output, yields the static
// fallback and marks the section as defaulted.
func aiSection[T any](ctx context.Context, gen provider.Generator, name, prompt string, fallback T) (T, bool) {
	if gen == nil {
		return fallback, true
	}

	raw, err := gen.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Str("section", name).Msg("Section generation failed, using default")
		return fallback, true
	}

	extracted, ok := provider.ExtractJSON(raw)
	if !ok {
		log.Warn().Str("section", name).Msg("Section response had no JSON, using default")
		return fallback, true
	}

	var section T
	if err := json.Unmarshal([]byte(extracted), &section); err != nil {
		log.Warn().Err(err).Str("section", name).Msg("Section JSON did not match shape, using default")
		return fallback, true
	}
	return section, false
}

func sectionPrompt(idea models.IdeaInput, sectionName, shape string) string {
	idea = privacy.RedactInput(idea)
	return fmt.Sprintf(`You are writing the %s section of a business plan. Respond with ONLY a JSON object, no prose.

Idea: %s (%s)
Problem: %s
Solution: %s
Target audience: %s

Respond with exactly this shape:
%s`, sectionName, idea.Title, idea.MarketCategory, idea.ProblemDescription, idea.SolutionDescription, idea.TargetAudience, shape)
}

// Section shapes, matched by the typed models' JSON tags.
const (
	shapeExecutiveSummary = `{"summary": "<text>", "mission_statement": "<text>", "keys_to_success": ["<text>", ...]}`
	shapeCompany          = `{"overview": "<text>", "legal_structure": "<text>", "objectives": ["<text>", ...]}`
	shapeMarket           = `{"industry_overview": "<text>", "target_market": "<text>", "market_size": "<text>", "trends": ["<text>", ...]}`
	shapeOrganization     = `{"structure": "<text>", "key_roles": ["<text>", ...], "hiring_plan": "<text>"}`
	shapeProductLine      = `{"description": "<text>", "features": ["<text>", ...], "roadmap": "<text>", "differentiators": ["<text>", ...]}`
	shapeMarketingSales   = `{"strategy": "<text>", "channels": ["<text>", ...], "pricing_model": "<text>", "sales_approach": "<text>"}`
	shapeFinancials       = `{"revenue_model": "<text>", "year_one_revenue": "<text>", "break_even": "<text>", "assumptions": ["<text>", ...]}`
)

// Static section defaults. Generic on purpose: a defaulted section is a
// scaffold for the founder to fill in, clearly marked by Defaulted.

func defaultExecutiveSummary(idea models.IdeaInput) models.ExecutiveSummary {
	return models.ExecutiveSummary{
		Summary:          fmt.Sprintf("%s addresses a real problem for %s. This plan outlines the path from idea to a launched product.", idea.Title, idea.TargetAudience),
		MissionStatement: fmt.Sprintf("Solve a concrete problem for %s with a focused, well-executed product.", idea.TargetAudience),
		KeysToSuccess: []string{
			"Validate demand before building",
			"Ship a narrow first version quickly",
			"Talk to users every week",
		},
	}
}

func defaultCompanyDescription(idea models.IdeaInput) models.CompanyDescription {
	return models.CompanyDescription{
		Overview:       fmt.Sprintf("%s is an early-stage %s venture.", idea.Title, idea.MarketCategory),
		LegalStructure: "Delaware C-Corp or local equivalent, decided with counsel before fundraising.",
		Objectives: []string{
			"Reach a working prototype within one quarter",
			"Acquire the first ten paying customers",
			"Establish a repeatable acquisition channel",
		},
	}
}

func defaultMarketAnalysis(idea models.IdeaInput) models.MarketAnalysisSection {
	return models.MarketAnalysisSection{
		IndustryOverview: fmt.Sprintf("The %s market has established players and room for focused entrants.", idea.MarketCategory),
		TargetMarket:     idea.TargetAudience,
		MarketSize:       "Market sizing pending; complete with current research.",
		Trends:           []string{"Buyers increasingly expect self-serve onboarding", "AI-assisted workflows are becoming table stakes"},
	}
}

func defaultOrganization(models.IdeaInput) models.OrganizationSection {
	return models.OrganizationSection{
		Structure: "Founder-led, flat team through the first year.",
		KeyRoles:  []string{"Technical founder", "Go-to-market founder", "Founding engineer (later)"},
		HiringPlan: "No hires before product-market fit signals; first hire supports whichever " +
			"founder function is the bottleneck.",
	}
}

func defaultProductLine(idea models.IdeaInput) models.ProductLineSection {
	return models.ProductLineSection{
		Description:     idea.SolutionDescription,
		Features:        []string{"Core workflow from the solution description", "Simple onboarding", "Usage analytics"},
		Roadmap:         "MVP first, then expand along the most-requested capability.",
		Differentiators: []string{"Focus on a single underserved audience"},
	}
}

func defaultMarketingSales(idea models.IdeaInput) models.MarketingSalesSection {
	return models.MarketingSalesSection{
		Strategy:      fmt.Sprintf("Reach %s where they already gather; lead with the problem, not the product.", idea.TargetAudience),
		Channels:      []string{"Content and SEO", "Communities and forums", "Partnerships"},
		PricingModel:  "Simple tiered pricing with a free trial.",
		SalesApproach: "Self-serve first; founder-led sales for early lighthouse customers.",
	}
}

func defaultFinancials(models.IdeaInput) models.FinancialProjectionsSection {
	return models.FinancialProjectionsSection{
		RevenueModel:   "Recurring subscription revenue.",
		YearOneRevenue: "Projection pending validated pricing; model conservatively.",
		BreakEven:      "Target breakeven within 18-24 months of launch.",
		Assumptions:    []string{"Paid conversion of 2-4% from free trial", "Monthly churn under 5%", "CAC recovered within 12 months"},
	}
}

// startupResources is the curated static resource list included in every
// report.
var startupResources = []models.Resource{
	{Name: "Y Combinator Startup Library", URL: "https://www.ycombinator.com/library", Description: "Essays and talks covering every stage of company building."},
	{Name: "Indie Hackers", URL: "https://www.indiehackers.com", Description: "Community of founders sharing revenue and growth tactics."},
	{Name: "Stripe Atlas Guides", URL: "https://stripe.com/atlas/guides", Description: "Practical guides on incorporation, banking, and taxes."},
	{Name: "First Round Review", URL: "https://review.firstround.com", Description: "Operational deep-dives from experienced operators."},
	{Name: "Lenny's Newsletter", URL: "https://www.lennysnewsletter.com", Description: "Product and growth benchmarks for early teams."},
}
