package report

import (
	_ "embed"
	"sort"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

//go:embed funding.yaml
var fundingCatalogRaw []byte

// Funding match weights. Category fit dominates; an investor who does
// not fund the vertical is barely worth listing.
const (
	fundingCategoryWeight = 40
	fundingStageWeight    = 30
	fundingAmountWeight   = 20
	fundingDeadlineWeight = 10

	maxFundingMatches = 5
)

type fundingCatalog struct {
	Opportunities []models.FundingOpportunity `yaml:"opportunities"`
}

// loadFundingCatalog parses the embedded catalog. The catalog ships
// inside the binary, so a parse failure is a build defect; it logs and
// returns empty rather than crashing report generation.
func loadFundingCatalog() []models.FundingOpportunity {
	var catalog fundingCatalog
	if err := yaml.Unmarshal(fundingCatalogRaw, &catalog); err != nil {
		log.Error().Err(err).Msg("Embedded funding catalog failed to parse")
		return nil
	}
	return catalog.Opportunities
}

// matchFunding scores the catalog against an idea's category and stage
// and returns the strongest matches, best first.
func matchFunding(catalog []models.FundingOpportunity, category models.MarketCategory, stage models.CompanyStage) []models.FundingMatch {
	matches := make([]models.FundingMatch, 0, len(catalog))
	for _, opp := range catalog {
		score := fundingScore(opp, category, stage)
		if score <= 0 {
			continue
		}
		matches = append(matches, models.FundingMatch{Opportunity: opp, Score: score})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Opportunity.Name < matches[j].Opportunity.Name
	})

	if len(matches) > maxFundingMatches {
		matches = matches[:maxFundingMatches]
	}
	return matches
}

func fundingScore(opp models.FundingOpportunity, category models.MarketCategory, stage models.CompanyStage) int {
	score := 0

	categoryFit := false
	for _, c := range opp.Categories {
		if c == category {
			categoryFit = true
			score += fundingCategoryWeight
			break
		}
	}

	for _, s := range opp.Stages {
		if s == stage || s == models.StageAnyStage {
			score += fundingStageWeight
			break
		}
	}

	// Early ventures need early-sized checks; anything at or under $1M
	// minimum is reachable.
	if opp.MinAmountUSD <= 1_000_000 {
		score += fundingAmountWeight
	}

	// Rolling deadlines or comfortable windows earn the deadline points.
	if opp.DeadlineDays == 0 || opp.DeadlineDays >= 30 {
		score += fundingDeadlineWeight
	}

	// No category fit means no match, whatever the other factors say.
	if !categoryFit {
		return 0
	}
	return score
}
