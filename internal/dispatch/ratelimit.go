package dispatch

import (
	"sync"
	"time"
)

// RateLimiter is a per-gateway token bucket. Disabled (nil receiver-safe)
// when the dispatcher is built without one, since rate limiting is
// optional.
type RateLimiter struct {
	mu         sync.Mutex
	rate       float64
	burst      float64
	buckets    map[Gateway]*bucket
	now        func() time.Time
}

type bucket struct {
	tokens   float64
	lastFill time.Time
}

// NewRateLimiter builds a limiter allowing ratePerSecond tokens per gateway,
// refilled continuously, capped at burst.
func NewRateLimiter(ratePerSecond, burst float64) *RateLimiter {
	return &RateLimiter{
		rate:    ratePerSecond,
		burst:   burst,
		buckets: make(map[Gateway]*bucket),
		now:     time.Now,
	}
}

// Allow reports whether gateway has a token available, consuming one if so.
func (l *RateLimiter) Allow(gw Gateway) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[gw]
	if !ok {
		b = &bucket{tokens: l.burst, lastFill: now}
		l.buckets[gw] = b
	}
	elapsed := now.Sub(b.lastFill).Seconds()
	b.tokens += elapsed * l.rate
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.lastFill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
