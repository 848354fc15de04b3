// Package cache provides the TTL-bounded series cache and the caching
// decorator for the market repository.
package cache

import (
	"context"
	"sync"
	"time"

	"signalchart/internal/feature/chart/domain/entity"
)

// DefaultTTL is the series cache time-to-live used when none is configured.
const DefaultTTL = 60 * time.Second

// SeriesCache stores fetched series under their request key. Implementations
// must be safe for concurrent use; entries older than the TTL report a miss.
type SeriesCache interface {
	Get(ctx context.Context, key string) ([]entity.Bar, bool)
	Put(ctx context.Context, key string, bars []entity.Bar)
}

type memoryEntry struct {
	bars      []entity.Bar
	fetchedAt time.Time
}

// MemorySeriesCache is a process-wide in-memory SeriesCache. One global
// mutex serializes every read and write; there is no per-key locking and
// no size bound beyond TTL expiry, which is acceptable because the key
// space (symbol x interval x outputsize x timezone) is small in practice.
type MemorySeriesCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemorySeriesCache creates a MemorySeriesCache. If ttl is 0 or
// negative it defaults to DefaultTTL.
func NewMemorySeriesCache(ttl time.Duration) *MemorySeriesCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemorySeriesCache{ttl: ttl, entries: map[string]memoryEntry{}}
}

// Get returns the cached series for key if it is younger than the TTL.
// Stale entries are evicted lazily here; there is no background sweep.
func (m *MemorySeriesCache) Get(_ context.Context, key string) ([]entity.Bar, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(e.fetchedAt) > m.ttl {
		delete(m.entries, key)
		return nil, false
	}
	// Hand out a copy so callers can never mutate the cached series.
	bars := make([]entity.Bar, len(e.bars))
	copy(bars, e.bars)
	return bars, true
}

// Put stores bars under key, overwriting any previous entry for that key.
func (m *MemorySeriesCache) Put(_ context.Context, key string, bars []entity.Bar) {
	stored := make([]entity.Bar, len(bars))
	copy(stored, bars)

	m.mu.Lock()
	m.entries[key] = memoryEntry{bars: stored, fetchedAt: time.Now()}
	m.mu.Unlock()
}
