// Package ratelimiter bounds the frequency of quote provider calls.
// Twelve Data's free tier allows only a handful of requests per minute,
// so exceeding the budget blocks the caller instead of burning quota.
package ratelimiter

import (
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface limits the frequency of operations such as
// external API calls.
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter counts calls within a fixed window and sleeps until the
// window resets once the limit is reached.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	interval  time.Duration
	count     int
	lastReset time.Time
}

// NewRateLimiter creates a new RateLimiter allowing limit calls per interval.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeeded blocks until the current call fits inside the window.
// The lock is held while sleeping so concurrent callers queue behind the
// exhausted window instead of racing past it.
func (rl *RateLimiter) WaitIfNeeded() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		sleep := rl.interval - now.Sub(rl.lastReset)
		if sleep > 0 {
			slog.Warn("provider rate limit reached", "limit", rl.limit, "sleep", sleep)
			time.Sleep(sleep)
		}
		rl.count = 1
		rl.lastReset = time.Now()
	}
}
