package models

// FounderMatch is a ranked candidate co-founder. Ephemeral: recomputed
// per request, never persisted.
type FounderMatch struct {
	User                   User             `json:"user"`
	MatchScore             int              `json:"match_score"`
	CommonInterests        []string         `json:"common_interests"`
	ComplementarySkills    []string         `json:"complementary_skills"`
	SharedMarketCategories []MarketCategory `json:"shared_market_categories"`
	ContactAllowed         bool             `json:"contact_allowed"`
}
