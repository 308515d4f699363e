// Package models contains domain models for nucleus.
package models

import "time"

// FounderRole classifies a founder's primary discipline.
type FounderRole string

const (
	RoleEngineer FounderRole = "engineer"
	RoleDesigner FounderRole = "designer"
	RoleMarketer FounderRole = "marketer"
	RoleProduct  FounderRole = "product"
	RoleSales    FounderRole = "sales"
	RoleUnknown  FounderRole = ""
)

// ComplementaryRoles are the discipline pairs considered the strongest
// co-founder combinations. Any pairing between two distinct members of
// this set scores as fully complementary.
var ComplementaryRoles = []FounderRole{RoleEngineer, RoleDesigner, RoleMarketer}

// User is a founder profile. Privacy flags gate whether the user appears
// in founder matching at all; per-idea visibility is on the Idea itself.
type User struct {
	ID                   string      `json:"id"`
	Email                string      `json:"email"`
	Name                 string      `json:"name"`
	Role                 FounderRole `json:"role"`
	Location             string      `json:"location"`
	Bio                  string      `json:"bio"`
	ProfilePublic        bool        `json:"profile_public"`
	AllowFounderMatching bool        `json:"allow_founder_matching"`
	CreatedAt            time.Time   `json:"created_at"`

	// Ideas is populated by the store for matching flows (public ideas
	// only when loaded through MatchableUsers).
	Ideas []Idea `json:"ideas,omitempty"`
}

// IdeaCategories returns the distinct market categories of the user's
// loaded ideas.
func (u *User) IdeaCategories() []MarketCategory {
	seen := make(map[MarketCategory]bool, len(u.Ideas))
	categories := make([]MarketCategory, 0, len(u.Ideas))
	for _, idea := range u.Ideas {
		if !seen[idea.MarketCategory] {
			seen[idea.MarketCategory] = true
			categories = append(categories, idea.MarketCategory)
		}
	}
	return categories
}
