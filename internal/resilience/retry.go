// Package resilience provides retry and circuit breaking for calls to the
// comparison data API.
package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Policy controls retry behavior with exponential backoff and jitter.
type Policy struct {
	// Attempts is the total number of tries, including the first. Default: 3.
	Attempts int

	// BaseDelay is the backoff before the first retry. Default: 250ms.
	BaseDelay time.Duration

	// MaxDelay caps a single backoff. Default: 10s.
	MaxDelay time.Duration

	// Jitter is the random spread as a fraction of the delay (0.2 = ±20%).
	Jitter float64

	// Retryable overrides IsRetryable when set.
	Retryable func(err error) bool

	// OnRetry runs before each backoff sleep.
	OnRetry func(attempt int, err error)
}

// DefaultPolicy returns the policy used for section fetches.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:  3,
		BaseDelay: 250 * time.Millisecond,
		MaxDelay:  10 * time.Second,
		Jitter:    0.2,
	}
}

// WithAttempts returns a copy of p with the given attempt count. Values
// below 1 leave p unchanged.
func (p Policy) WithAttempts(n int) Policy {
	if n >= 1 {
		p.Attempts = n
	}
	return p
}

// Do runs fn until it succeeds, returns a non-retryable error, the attempts
// run out, or ctx is done. The last error is returned.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	_, err := DoVal(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// DoVal is Do for functions that produce a value.
func DoVal[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	p = p.normalized()
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}

	var zero T
	for attempt := 1; ; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if ctx.Err() != nil || !retryable(err) || attempt >= p.Attempts {
			return zero, err
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}

		timer := time.NewTimer(p.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, err
		case <-timer.C:
		}
	}
}

func (p Policy) normalized() Policy {
	def := DefaultPolicy()
	if p.Attempts <= 0 {
		p.Attempts = def.Attempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = def.BaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = def.MaxDelay
	}
	if p.Jitter < 0 {
		p.Jitter = 0
	}
	return p
}

// backoff is the sleep after the given 1-based attempt.
func (p Policy) backoff(attempt int) time.Duration {
	d := math.Min(float64(p.BaseDelay)*math.Pow(2, float64(attempt-1)), float64(p.MaxDelay))
	if p.Jitter > 0 {
		d += (rand.Float64()*2 - 1) * d * p.Jitter
	}
	return time.Duration(math.Max(d, 0))
}

// LogRetry returns an OnRetry callback that logs each retry.
func LogRetry(operation string) func(int, error) {
	return func(attempt int, err error) {
		zap.L().Warn("resilience: retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}
