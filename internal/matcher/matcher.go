// Package matcher ranks candidate co-founders for a seeking founder.
// Matches are computed over the privacy-filtered candidate set and are
// never persisted; a short cache keeps repeat lookups cheap.
package matcher

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NoobSupreme1one/nucleus/internal/cache"
	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

const (
	// DefaultLimit is the number of matches returned when the caller
	// does not specify one.
	DefaultLimit = 10

	matchTTL         = time.Hour
	cachePrefixMatch = "matches"

	// TagMatching invalidates every cached match list at once, e.g.
	// after a privacy-flag change.
	TagMatching = "founder-matching"
)

// Store is the persistence surface the matcher needs. MatchableUsers
// returns only users with public profiles who opted into matching, with
// their public ideas preloaded, excluding the seeker.
type Store interface {
	User(ctx context.Context, id string) (*models.User, error)
	MatchableUsers(ctx context.Context, excludeID string) ([]models.User, error)
}

// Service computes founder matches.
type Service struct {
	store Store
	cache *cache.Manager

	// now is injectable for tests.
	now func() time.Time
}

func NewService(store Store, cacheManager *cache.Manager) *Service {
	return &Service{store: store, cache: cacheManager, now: time.Now}
}

// SetNow overrides the clock. Test hook only.
func (s *Service) SetNow(now func() time.Time) { s.now = now }

// userTag builds the per-user invalidation tag shared with other
// user-scoped caches.
func userTag(userID string) string {
	return "user:" + userID
}

// TopMatches returns the best candidate co-founders for userID, ranked
// by match score. Unknown users surface a NotFoundError.
func (s *Service) TopMatches(ctx context.Context, userID string, limit int) ([]models.FounderMatch, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	opts := cache.Options{
		TTL:  matchTTL,
		Tags: []string{TagMatching, userTag(userID)},
	}
	params := map[string]any{"user_id": userID, "limit": limit}
	return cache.GetOrSet(ctx, s.cache, cachePrefixMatch, params, opts,
		func(ctx context.Context) ([]models.FounderMatch, error) {
			return s.computeMatches(ctx, userID, limit)
		})
}

func (s *Service) computeMatches(ctx context.Context, userID string, limit int) ([]models.FounderMatch, error) {
	seeker, err := s.store.User(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.store.MatchableUsers(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	matches := make([]models.FounderMatch, 0, len(candidates))
	for i := range candidates {
		matches = append(matches, Match(seeker, &candidates[i], now))
	}

	// Equal scores rank by user ID so pagination stays stable across
	// requests.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].MatchScore != matches[j].MatchScore {
			return matches[i].MatchScore > matches[j].MatchScore
		}
		return matches[i].User.ID < matches[j].User.ID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	log.Debug().
		Str("user_id", userID).
		Int("candidates", len(candidates)).
		Int("returned", len(matches)).
		Msg("Computed founder matches")

	return matches, nil
}

// InvalidateUser drops cached matches for one user.
func (s *Service) InvalidateUser(userID string) int {
	return s.cache.InvalidateByTag(userTag(userID))
}

// InvalidateAll drops every cached match list.
func (s *Service) InvalidateAll() int {
	return s.cache.InvalidateByTag(TagMatching)
}
