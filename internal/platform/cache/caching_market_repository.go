package cache

import (
	"context"
	"fmt"
	"strings"

	"signalchart/internal/feature/chart/domain/entity"
	"signalchart/internal/feature/chart/usecase"
)

// CachingMarketRepository decorates a MarketRepository with a SeriesCache.
// It implements the decorator pattern, transparently avoiding redundant
// provider calls without modifying the underlying repository.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	store     SeriesCache
	namespace string
}

var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates a MarketRepository with caching.
// A nil store disables caching entirely. If namespace is empty, it uses
// "series".
func NewCachingMarketRepository(store SeriesCache, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if namespace == "" {
		namespace = "series"
	}
	return &CachingMarketRepository{inner: inner, store: store, namespace: namespace}
}

// GetTimeSeries serves the series from cache when a fresh entry exists,
// otherwise fetches from the inner repository and stores the result.
// Fetch failures are never cached.
func (c *CachingMarketRepository) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int, timezone string) ([]entity.Bar, error) {
	if c.store == nil {
		return c.inner.GetTimeSeries(ctx, symbol, interval, outputsize, timezone)
	}

	key := c.cacheKey(symbol, interval, outputsize, timezone)
	if bars, ok := c.store.Get(ctx, key); ok {
		return bars, nil
	}

	bars, err := c.inner.GetTimeSeries(ctx, symbol, interval, outputsize, timezone)
	if err != nil {
		return nil, err
	}
	c.store.Put(ctx, key, bars)
	return bars, nil
}

// cacheKey is a deterministic encoding of every parameter that affects
// the fetched data.
func (c *CachingMarketRepository) cacheKey(symbol, interval string, outputsize int, timezone string) string {
	return fmt.Sprintf("%s:%s:%s:%d:%s",
		c.namespace,
		safe(symbol),
		safe(interval),
		outputsize,
		safe(timezone),
	)
}

// safe escapes characters that are problematic for cache keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
