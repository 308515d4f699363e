package matcher

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// Factor weights. They sum to 1.0; the weighted factor scores (each
// 0-100) produce the final 0-100 match score.
const (
	weightCategories = 0.30
	weightRole       = 0.25
	weightLocation   = 0.15
	weightExperience = 0.15
	weightBio        = 0.10
	weightActivity   = 0.05
)

// neutralScore is used when a factor has no signal on either side.
// Missing data should neither reward nor punish a candidate.
const neutralScore = 50.0

// roleScore rates the discipline pairing. Two distinct complementary
// disciplines are the strongest signal; identical disciplines overlap
// too much to be ideal.
func roleScore(a, b models.FounderRole) float64 {
	if a == models.RoleUnknown || b == models.RoleUnknown {
		return neutralScore
	}
	if a == b {
		return 30
	}
	if isComplementary(a) && isComplementary(b) {
		return 100
	}
	return 60
}

func isComplementary(r models.FounderRole) bool {
	for _, c := range models.ComplementaryRoles {
		if r == c {
			return true
		}
	}
	return false
}

// categoryScore rates market-category overlap between the two founders'
// public ideas: the Jaccard ratio of their category sets.
func categoryScore(a, b []models.MarketCategory) (float64, []models.MarketCategory) {
	if len(a) == 0 || len(b) == 0 {
		return neutralScore, nil
	}

	setA := make(map[models.MarketCategory]bool, len(a))
	for _, c := range a {
		setA[c] = true
	}

	var shared []models.MarketCategory
	union := len(a)
	seen := make(map[models.MarketCategory]bool, len(b))
	for _, c := range b {
		if seen[c] {
			continue
		}
		seen[c] = true
		if setA[c] {
			shared = append(shared, c)
		} else {
			union++
		}
	}

	sort.Slice(shared, func(i, j int) bool { return shared[i] < shared[j] })
	return 100 * float64(len(shared)) / float64(union), shared
}

// locationScore rates geographic proximity from free-text locations.
// Matching comma-separated components (same city or same country) count
// as partial proximity.
func locationScore(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return neutralScore
	}
	if a == b {
		return 100
	}

	partsA := splitLocation(a)
	partsB := splitLocation(b)
	for _, pa := range partsA {
		for _, pb := range partsB {
			if pa == pb {
				return 80
			}
		}
	}
	return 20
}

func splitLocation(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// experienceLevel buckets a founder into a 0-5 level from idea count,
// bio depth and account age.
func experienceLevel(u *models.User, now time.Time) int {
	level := len(u.Ideas)
	if level > 2 {
		level = 2
	}
	if len(u.Bio) >= 120 {
		level++
	}
	if len(u.Bio) >= 400 {
		level++
	}
	if !u.CreatedAt.IsZero() && now.Sub(u.CreatedAt) >= 365*24*time.Hour {
		level++
	}
	if level > 5 {
		level = 5
	}
	return level
}

// closenessScore turns a level distance into a factor score.
func closenessScore(a, b int) float64 {
	d := a - b
	if d < 0 {
		d = -d
	}
	switch d {
	case 0:
		return 100
	case 1:
		return 80
	case 2:
		return 60
	default:
		return 40
	}
}

// bioScore rates interest overlap between two bios, and returns the
// shared terms as common interests.
func bioScore(a, b string) (float64, []string) {
	setA := significantWords(a)
	setB := significantWords(b)
	if len(setA) == 0 || len(setB) == 0 {
		return neutralScore, nil
	}

	var shared []string
	union := len(setA)
	for w := range setB {
		if setA[w] {
			shared = append(shared, w)
		} else {
			union++
		}
	}
	sort.Strings(shared)

	score := 400 * float64(len(shared)) / float64(union)
	if score > 100 {
		score = 100
	}
	return score, shared
}

func significantWords(text string) map[string]bool {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?()\"'")
		if len(w) > 3 {
			set[w] = true
		}
	}
	return set
}

// lastActivity is the founder's most recent visible action: the newest
// public idea, or account creation when no ideas are loaded.
func lastActivity(u *models.User) time.Time {
	latest := u.CreatedAt
	for _, idea := range u.Ideas {
		if idea.CreatedAt.After(latest) {
			latest = idea.CreatedAt
		}
	}
	return latest
}

// activityScore rates how close the two founders' latest activity is.
// Founders active around the same time tend to be at the same
// commitment stage.
func activityScore(a, b time.Time) float64 {
	if a.IsZero() || b.IsZero() {
		return neutralScore
	}
	gap := a.Sub(b)
	if gap < 0 {
		gap = -gap
	}
	switch {
	case gap <= 30*24*time.Hour:
		return 100
	case gap <= 90*24*time.Hour:
		return 80
	case gap <= 365*24*time.Hour:
		return 60
	default:
		return 40
	}
}

// Match scores candidate against seeker across every factor.
func Match(seeker, candidate *models.User, now time.Time) models.FounderMatch {
	categories, shared := categoryScore(seeker.IdeaCategories(), candidate.IdeaCategories())
	role := roleScore(seeker.Role, candidate.Role)
	location := locationScore(seeker.Location, candidate.Location)
	experience := closenessScore(experienceLevel(seeker, now), experienceLevel(candidate, now))
	bio, interests := bioScore(seeker.Bio, candidate.Bio)
	activity := activityScore(lastActivity(seeker), lastActivity(candidate))

	total := categories*weightCategories +
		role*weightRole +
		location*weightLocation +
		experience*weightExperience +
		bio*weightBio +
		activity*weightActivity

	var skills []string
	if role == 100 {
		skills = []string{string(seeker.Role) + " + " + string(candidate.Role)}
	}

	return models.FounderMatch{
		User:                   *candidate,
		MatchScore:             int(math.Round(total)),
		CommonInterests:        interests,
		ComplementarySkills:    skills,
		SharedMarketCategories: shared,
		ContactAllowed:         candidate.ProfilePublic && candidate.AllowFounderMatching,
	}
}
