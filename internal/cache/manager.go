// Package cache provides the in-memory TTL cache that makes the
// validation pipeline affordable. A Manager is constructed explicitly and
// injected into the services that need it; there is no package-level
// singleton.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Cache configuration defaults.
const (
	// DefaultMaxEntries caps the store before eviction kicks in.
	DefaultMaxEntries = 1000
	// DefaultSweepInterval is how often the background sweeper removes
	// expired entries.
	DefaultSweepInterval = time.Minute
	// evictionPercent is the share of entries removed (oldest by last
	// access) when the store exceeds its cap.
	evictionPercent = 10
	// keyHashLen is the number of hex characters of the params hash kept
	// in a cache key.
	keyHashLen = 16
)

// entry is one cached value with its bookkeeping.
type entry struct {
	data         any
	timestamp    time.Time
	expiresAt    time.Time
	lastAccessed time.Time
	hits         int64
	tags         []string
	approxBytes  int
}

// Config holds cache construction options.
type Config struct {
	MaxEntries    int
	SweepInterval time.Duration
}

// Manager is a TTL cache with tag-based bulk invalidation and
// oldest-by-last-access eviction. Safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*entry

	maxEntries    int
	sweepInterval time.Duration

	flight  singleflight.Group
	metrics *Metrics

	// now is injectable for tests.
	now func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	expiredSeen int64
}

// NewManager creates a cache manager and starts its background sweeper.
// Call Close to stop it.
func NewManager(cfg Config) *Manager {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	sweepInterval := cfg.SweepInterval
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		entries:       make(map[string]*entry),
		maxEntries:    maxEntries,
		sweepInterval: sweepInterval,
		metrics:       newMetrics(),
		now:           time.Now,
		ctx:           ctx,
		cancel:        cancel,
	}

	m.wg.Add(1)
	go m.sweepLoop()

	return m
}

// Close stops the background sweeper.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}

// SetNow overrides the clock. Test hook only.
func (m *Manager) SetNow(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// Key builds a cache key from a prefix and arbitrary params:
// prefix + ":" + first 16 hex chars of sha256 over canonical JSON.
// Params marshal through a generic map so object key order never
// affects the key.
func Key(prefix string, params any) string {
	canonical, err := canonicalJSON(params)
	if err != nil {
		// Params that cannot be marshaled still need a stable key.
		canonical = []byte(fmt.Sprintf("%+v", params))
	}
	sum := sha256.Sum256(canonical)
	return prefix + ":" + hex.EncodeToString(sum[:])[:keyHashLen]
}

// canonicalJSON marshals params with sorted object keys at every level.
func canonicalJSON(params any) ([]byte, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	// encoding-compatible marshalers emit map keys in sorted order.
	return json.Marshal(generic)
}

// Get returns the cached value for key, or nil and false on a miss.
// Expired entries are deleted on read.
func (m *Manager) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		m.metrics.miss(m.ctx)
		return nil, false
	}

	now := m.now()
	if now.After(e.expiresAt) {
		delete(m.entries, key)
		m.expiredSeen++
		m.metrics.miss(m.ctx)
		return nil, false
	}

	e.hits++
	e.lastAccessed = now
	m.metrics.hit(m.ctx)
	return e.data, true
}

// Set stores a value under key with the given TTL and tags, evicting the
// oldest 10% of entries if the store exceeds its cap. Last writer wins.
func (m *Manager) Set(key string, value any, ttl time.Duration, tags []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.entries[key] = &entry{
		data:         value,
		timestamp:    now,
		expiresAt:    now.Add(ttl),
		lastAccessed: now,
		tags:         tags,
		approxBytes:  approxSize(value),
	}

	if len(m.entries) > m.maxEntries {
		m.evictLocked()
	}
}

// Options control a GetOrSet call.
type Options struct {
	TTL  time.Duration
	Tags []string
}

// GetOrSet returns the cached value for (prefix, params) or runs factory
// and caches its result. Concurrent misses on the same key are coalesced
// so the factory runs once.
func GetOrSet[T any](ctx context.Context, m *Manager, prefix string, params any, opts Options, factory func(context.Context) (T, error)) (T, error) {
	key := Key(prefix, params)

	if cached, ok := m.Get(key); ok {
		if typed, ok := cached.(T); ok {
			return typed, nil
		}
		// A prefix collision across types; treat as a miss.
		log.Warn().Str("key", key).Msg("Cache entry has unexpected type")
	}

	result, err, _ := m.flight.Do(key, func() (any, error) {
		// Re-check under the flight: another caller may have filled the
		// entry between the miss and the coalesced execution.
		if cached, ok := m.Get(key); ok {
			if typed, ok := cached.(T); ok {
				return typed, nil
			}
		}
		value, err := factory(ctx)
		if err != nil {
			return value, err
		}
		m.Set(key, value, opts.TTL, opts.Tags)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// InvalidateByTag removes every entry carrying the tag. Returns the
// number of entries removed.
func (m *Manager) InvalidateByTag(tag string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, e := range m.entries {
		for _, t := range e.tags {
			if t == tag {
				delete(m.entries, key)
				removed++
				break
			}
		}
	}
	if removed > 0 {
		m.metrics.invalidated(m.ctx, removed)
		log.Debug().Str("tag", tag).Int("removed", removed).Msg("Cache invalidated by tag")
	}
	return removed
}

// InvalidateByPrefix removes every entry whose key starts with
// prefix + ":". Returns the number of entries removed.
func (m *Manager) InvalidateByPrefix(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	want := prefix + ":"
	for key := range m.entries {
		if strings.HasPrefix(key, want) {
			delete(m.entries, key)
			removed++
		}
	}
	if removed > 0 {
		m.metrics.invalidated(m.ctx, removed)
		log.Debug().Str("prefix", prefix).Int("removed", removed).Msg("Cache invalidated by prefix")
	}
	return removed
}

// Stats describes the cache's current state.
type Stats struct {
	Entries     int           `json:"entries"`
	TotalHits   int64         `json:"total_hits"`
	AverageAge  time.Duration `json:"average_age_ns"`
	ExpiredSeen int64         `json:"expired_seen"`
	ApproxBytes int           `json:"approx_bytes"`
}

// GetStats returns a snapshot of cache statistics.
func (m *Manager) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{
		Entries:     len(m.entries),
		ExpiredSeen: m.expiredSeen,
	}

	now := m.now()
	var totalAge time.Duration
	for _, e := range m.entries {
		stats.TotalHits += e.hits
		stats.ApproxBytes += e.approxBytes
		totalAge += now.Sub(e.timestamp)
	}
	if len(m.entries) > 0 {
		stats.AverageAge = totalAge / time.Duration(len(m.entries))
	}
	return stats
}

// Sweep removes expired entries immediately. The background loop calls
// this on every tick; exported so tests and admin callers can force it.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
			m.expiredSeen++
			removed++
		}
	}
	return removed
}

func (m *Manager) sweepLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			if removed := m.Sweep(); removed > 0 {
				log.Debug().Int("removed", removed).Msg("Cache sweep removed expired entries")
			}
		}
	}
}

// evictLocked removes the oldest evictionPercent of entries by last
// access. Caller holds the write lock.
func (m *Manager) evictLocked() {
	type aged struct {
		key          string
		lastAccessed time.Time
	}

	candidates := make([]aged, 0, len(m.entries))
	for key, e := range m.entries {
		candidates = append(candidates, aged{key: key, lastAccessed: e.lastAccessed})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].lastAccessed.Before(candidates[j].lastAccessed)
	})

	evictCount := len(candidates) * evictionPercent / 100
	if evictCount < 1 {
		evictCount = 1
	}
	for _, c := range candidates[:evictCount] {
		delete(m.entries, c.key)
	}
	m.metrics.evicted(m.ctx, evictCount)
	log.Debug().Int("evicted", evictCount).Msg("Cache evicted oldest entries")
}

// approxSize estimates an entry's memory footprint from its JSON form.
func approxSize(value any) int {
	raw, err := json.Marshal(value)
	if err != nil {
		return 0
	}
	return len(raw)
}
