package resilience

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig configures exponential backoff
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig waits up to roughly half a minute in total, enough for a
// database container that starts alongside the service.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   8,
		InitialDelay:  250 * time.Millisecond,
		MaxDelay:      8 * time.Second,
		BackoffFactor: 2,
	}
}

// RetryWithResult calls fn until it succeeds, attempts run out or ctx is done.
func RetryWithResult[T any](ctx context.Context, config *RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	delay := config.InitialDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if attempt == config.MaxAttempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}

		delay = min(time.Duration(float64(delay)*config.BackoffFactor), config.MaxDelay)
	}

	return zero, fmt.Errorf("gave up after %d attempts: %w", config.MaxAttempts, lastErr)
}
