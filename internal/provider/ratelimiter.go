package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket guarding calls to the upstream finance API.
// Yahoo's unauthenticated endpoints throttle aggressively, so every request
// path goes through Wait before touching the network.
type RateLimiter struct {
	mu             sync.Mutex
	available      int
	capacity       int
	refillInterval time.Duration
	lastRefill     time.Time
}

// NewRateLimiter allows a burst of maxTokens and yields one new token per
// refillInterval after the burst is spent.
func NewRateLimiter(maxTokens int, refillInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		available:      maxTokens,
		capacity:       maxTokens,
		refillInterval: refillInterval,
		lastRefill:     time.Now(),
	}
}

// Wait blocks until a token is available or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.take() {
			return nil
		}
		timer := time.NewTimer(r.refillInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RateLimiter) take() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := time.Since(r.lastRefill)
	if n := int(elapsed / r.refillInterval); n > 0 {
		r.available += n
		if r.available > r.capacity {
			r.available = r.capacity
		}
		r.lastRefill = r.lastRefill.Add(time.Duration(n) * r.refillInterval)
	}

	if r.available > 0 {
		r.available--
		return true
	}
	return false
}
