package cache

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the cache's otel counters. Exporter wiring is the host
// application's concern; with no meter provider installed these are
// no-ops.
type Metrics struct {
	hits          metric.Int64Counter
	misses        metric.Int64Counter
	evictions     metric.Int64Counter
	invalidations metric.Int64Counter
}

func newMetrics() *Metrics {
	meter := otel.Meter("nucleus/cache")

	hits, _ := meter.Int64Counter("cache.hits",
		metric.WithDescription("Cache read hits"))
	misses, _ := meter.Int64Counter("cache.misses",
		metric.WithDescription("Cache read misses, including expired reads"))
	evictions, _ := meter.Int64Counter("cache.evictions",
		metric.WithDescription("Entries evicted by the size cap"))
	invalidations, _ := meter.Int64Counter("cache.invalidations",
		metric.WithDescription("Entries removed by tag or prefix invalidation"))

	return &Metrics{
		hits:          hits,
		misses:        misses,
		evictions:     evictions,
		invalidations: invalidations,
	}
}

func (m *Metrics) hit(ctx context.Context)  { m.hits.Add(ctx, 1) }
func (m *Metrics) miss(ctx context.Context) { m.misses.Add(ctx, 1) }

func (m *Metrics) evicted(ctx context.Context, n int) {
	m.evictions.Add(ctx, int64(n))
}

func (m *Metrics) invalidated(ctx context.Context, n int) {
	m.invalidations.Add(ctx, int64(n))
}
