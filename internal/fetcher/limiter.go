package fetcher

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// AdaptiveLimiter is a rate.Limiter that speeds up by 20% after each success
// (up to 2x the initial rate) and halves after each 429 (down to a quarter).
type AdaptiveLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	initial rate.Limit
	current rate.Limit
}

// NewAdaptiveLimiter creates a limiter starting at perSec with the given burst.
func NewAdaptiveLimiter(perSec rate.Limit, burst int) *AdaptiveLimiter {
	if burst < 1 {
		burst = 1
	}
	return &AdaptiveLimiter{
		limiter: rate.NewLimiter(perSec, burst),
		initial: perSec,
		current: perSec,
	}
}

// Wait blocks until a request may be sent.
func (a *AdaptiveLimiter) Wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

// OnSuccess raises the rate.
func (a *AdaptiveLimiter) OnSuccess() {
	a.adjust(func(cur rate.Limit) rate.Limit { return min(cur*1.2, a.initial*2) })
}

// OnRateLimit halves the rate.
func (a *AdaptiveLimiter) OnRateLimit() {
	next := a.adjust(func(cur rate.Limit) rate.Limit { return max(cur*0.5, a.initial/4) })
	zap.L().Warn("fetcher: rate limited, slowing down",
		zap.Float64("new_rate", float64(next)),
	)
}

// Limit returns the current rate.
func (a *AdaptiveLimiter) Limit() rate.Limit {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *AdaptiveLimiter) adjust(next func(rate.Limit) rate.Limit) rate.Limit {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initial == rate.Inf {
		return a.current
	}
	a.current = next(a.current)
	a.limiter.SetLimit(a.current)
	return a.current
}
