// Package ratelimiter throttles outbound API calls.
package ratelimiter

import (
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface limits the frequency of operations such as API calls.
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter enforces a fixed number of calls per interval, sleeping when
// the budget is exhausted.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	interval  time.Duration
	count     int
	lastReset time.Time
}

// NewRateLimiter creates a RateLimiter allowing limit calls per interval.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeeded checks whether the rate limit has been hit and sleeps until
// the window resets when it has.
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
			slog.Warn("rate limit hit, sleeping", "limit", rl.limit, "sleep", sleep)
			time.Sleep(sleep)
		}
		rl.count = 1
		rl.lastReset = time.Now()
	}
}
