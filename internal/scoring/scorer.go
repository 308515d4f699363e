// Package scoring implements the 1000-point rubric that grades a startup
// idea from its text alone. The scorer is deterministic: identical input
// always produces an identical score, so results are safe to cache and
// to diff across runs.
package scoring

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// heuristicConfidence is the fixed confidence reported for rubric-only
// scores. Text heuristics cannot verify their own claims.
const heuristicConfidence = 70.0

// Share-of-max thresholds for the strength and weakness narratives.
const (
	strengthThreshold = 0.8
	weaknessThreshold = 0.4
)

// Score runs every rubric category over the idea and assembles the full
// result. The caller supplies now so the output is a pure function of
// its arguments.
func Score(input models.IdeaInput, now time.Time) models.EnhancedScore {
	categories := make(map[string]models.ScoreCategory, len(categoryBuilders))
	total := 0.0
	for _, b := range categoryBuilders {
		cat := b.build(input)
		categories[b.name] = cat
		total += cat.Score
	}

	grade := models.GradeFor(total)

	log.Debug().
		Str("title", input.Title).
		Str("category", string(input.MarketCategory)).
		Float64("overall", total).
		Str("grade", string(grade)).
		Msg("Scored idea")

	return models.EnhancedScore{
		OverallScore:     total,
		MaxScore:         models.MaxOverallScore,
		GradeLevel:       grade,
		Recommendation:   models.RecommendationFor(grade),
		Categories:       categories,
		DetailedAnalysis: analyze(categories),
		ConfidenceLevel:  heuristicConfidence,
		LastUpdated:      now,
	}
}

// analyze derives the SWOT narrative. Strengths are categories at or
// above 80% of their budget, weaknesses at or below 40%; both follow
// canonical category order so output is stable.
func analyze(categories map[string]models.ScoreCategory) models.DetailedAnalysis {
	var strengths, weaknesses []string
	for _, name := range models.CategoryOrder {
		cat := categories[name]
		share := cat.Score / cat.MaxScore
		switch {
		case share >= strengthThreshold:
			strengths = append(strengths, "Strong "+name+" positions this idea well against the field.")
		case share <= weaknessThreshold:
			weaknesses = append(weaknesses, name+" scores low and needs attention before launch.")
		}
	}

	return models.DetailedAnalysis{
		Strengths:  strengths,
		Weaknesses: weaknesses,
		Opportunities: []string{
			"Validate demand with a landing page and measure signup conversion.",
			"Interview ten target users to confirm the problem's severity.",
			"Identify an underserved niche within the target audience.",
		},
		Threats: []string{
			"Incumbents can copy a validated feature faster than a new entrant can build distribution.",
			"Market conditions and platform policies shift; revalidate assumptions quarterly.",
		},
		NextSteps: []string{
			"Write down the single riskiest assumption and design the cheapest test for it.",
			"Build a minimal prototype that exercises the core value proposition.",
			"Talk to potential customers before writing more code.",
		},
	}
}
