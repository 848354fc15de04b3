package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"signalchart/internal/feature/chart/domain/entity"
)

// RedisSeriesCache is a SeriesCache backed by Redis, for deployments
// running more than one process. Series are stored JSON-encoded with a
// server-side TTL, so expiry needs no lazy eviction here.
type RedisSeriesCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ SeriesCache = (*RedisSeriesCache)(nil)

// NewRedisSeriesCache creates a RedisSeriesCache. If ttl is 0 or
// negative it defaults to DefaultTTL.
func NewRedisSeriesCache(rdb *redis.Client, ttl time.Duration) *RedisSeriesCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisSeriesCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached series for key. A corrupted entry is deleted
// and reported as a miss so the caller refetches.
func (r *RedisSeriesCache) Get(ctx context.Context, key string) ([]entity.Bar, bool) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return nil, false
	}
	var bars []entity.Bar
	if err := json.Unmarshal(b, &bars); err != nil {
		_ = r.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return bars, true
}

// Put stores bars under key with the configured TTL. Best effort: a
// failed write only costs a refetch on the next request.
func (r *RedisSeriesCache) Put(ctx context.Context, key string, bars []entity.Bar) {
	b, err := json.Marshal(bars)
	if err != nil {
		return
	}
	_ = r.rdb.Set(ctx, key, b, r.ttl).Err()
}
