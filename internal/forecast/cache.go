// Package forecast implements the staleness-aware cache in front of the
// wave-forecast upstream. The upstream is expensive and rate-limited, so the
// cache guarantees at most one fetch per staleness window while keeping the
// served data no older than one scheduling boundary.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shorecast/swellboard/internal/domain"
	"github.com/shorecast/swellboard/internal/observability"
)

// Entry is one cached forecast fetch. Samples are immutable once produced;
// a fresher entry supersedes the whole value.
type Entry struct {
	FetchedAt time.Time
	Samples   []domain.ForecastSample
}

// Fetcher retrieves a fresh forecast series from the upstream.
type Fetcher interface {
	FetchForecast(ctx context.Context) ([]domain.ForecastSample, error)
}

// Store persists the cache entry as an opaque versioned blob. The cache is
// the sole writer of this blob.
type Store interface {
	// Get returns the blob and its revision token, or domain.ErrNotFound.
	Get(ctx context.Context) ([]byte, string, error)
	// Put writes the blob conditionally on expectRev (empty asserts absence)
	// and returns the new revision, or domain.ErrWriteConflict.
	Put(ctx context.Context, data []byte, expectRev string) (string, error)
}

// Cache wraps a Fetcher with staleness-checked persistence.
type Cache struct {
	store   Store
	fetcher Fetcher
	policy  StalenessPolicy
	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  *slog.Logger
}

// New creates a Cache. Pass clockwork.NewRealClock() outside tests.
func New(store Store, fetcher Fetcher, policy StalenessPolicy, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Cache {
	return &Cache{
		store:   store,
		fetcher: fetcher,
		policy:  policy,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// Current returns a forecast entry that satisfies the staleness policy,
// refetching and persisting when needed. When the refetch fails and a
// previous entry exists, that entry is served stale rather than failing the
// caller: availability wins over freshness here, because the display board
// would otherwise show nothing. With no previous entry the fetch error
// propagates.
func (c *Cache) Current(ctx context.Context) (Entry, error) {
	now := c.clock.Now()

	entry, rev, ok := c.load(ctx)
	if ok && !c.policy.Stale(entry.FetchedAt, now) {
		c.metrics.CacheLookups.WithLabelValues("fresh").Inc()
		return entry, nil
	}
	if ok {
		c.metrics.CacheLookups.WithLabelValues("stale").Inc()
	} else {
		c.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	samples, err := c.fetcher.FetchForecast(ctx)
	if err != nil {
		if ok {
			c.logger.Warn("forecast refetch failed, serving last known entry",
				"fetched_at", entry.FetchedAt,
				"age", now.Sub(entry.FetchedAt),
				"error", err,
			)
			c.metrics.CacheServedStale.Inc()
			return entry, nil
		}
		return Entry{}, fmt.Errorf("refresh forecast: %w", err)
	}

	fresh := Entry{FetchedAt: now, Samples: samples}
	return c.persist(ctx, fresh, rev), nil
}

// persist writes the fresh entry conditionally. On a write conflict another
// aggregation pass refreshed concurrently: adopt its entry when it is fresh,
// otherwise retry once against the current revision, and on a second
// conflict fall back to whatever entry is now current. The fetched data is
// never lost to the caller and the persisted blob is never corrupted.
func (c *Cache) persist(ctx context.Context, fresh Entry, rev string) Entry {
	data, err := encodeEntry(fresh)
	if err != nil {
		c.logger.Error("encode forecast entry failed", "error", err)
		return fresh
	}

	_, err = c.store.Put(ctx, data, rev)
	if err == nil {
		return fresh
	}
	if !errors.Is(err, domain.ErrWriteConflict) {
		c.logger.Warn("persist forecast entry failed", "error", err)
		return fresh
	}

	c.metrics.CacheWriteConflicts.Inc()
	current, currentRev, ok := c.load(ctx)
	if ok && !c.policy.Stale(current.FetchedAt, c.clock.Now()) {
		return current
	}

	if _, err := c.store.Put(ctx, data, currentRev); err != nil {
		if errors.Is(err, domain.ErrWriteConflict) {
			c.metrics.CacheWriteConflicts.Inc()
			if settled, _, ok := c.load(ctx); ok {
				return settled
			}
		} else {
			c.logger.Warn("persist forecast entry failed", "error", err)
		}
	}
	return fresh
}

// load reads and decodes the persisted entry. A corrupt blob is reported as
// absent but keeps its revision so the next write replaces it instead of
// conflicting.
func (c *Cache) load(ctx context.Context) (Entry, string, bool) {
	data, rev, err := c.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.logger.Warn("read forecast entry failed", "error", err)
		}
		return Entry{}, "", false
	}

	entry, err := decodeEntry(data)
	if err != nil {
		c.logger.Warn("corrupt forecast entry, will refetch", "error", err)
		return Entry{}, rev, false
	}
	return entry, rev, true
}
