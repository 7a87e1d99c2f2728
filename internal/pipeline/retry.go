package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// Policy controls Retry.
type Policy struct {
	MaxAttempts int
	MinDelay    time.Duration
	MaxDelay    time.Duration
	// Sleep waits between attempts; nil uses a timer bound to ctx.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Retry calls fn until it succeeds, returns a Permanent error, ctx is done
// or MaxAttempts is reached. Attempts are numbered from 1.
func Retry[T any](ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T
	attempts := max(p.MaxAttempts, 1)
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return zero, fmt.Errorf("%w (last error: %w)", err, lastErr)
			}
			return zero, err
		}

		v, err := fn(ctx, attempt)
		if err == nil {
			return v, nil
		}
		if isPermanent(err) {
			return zero, err
		}
		lastErr = err

		if attempt < attempts {
			if err := sleep(ctx, p.delay()); err != nil {
				return zero, fmt.Errorf("%w (last error: %w)", err, lastErr)
			}
		}
	}
	return zero, fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}

// delay picks a random pause in [MinDelay, MaxDelay].
func (p Policy) delay() time.Duration {
	if p.MaxDelay <= p.MinDelay {
		return p.MinDelay
	}
	return p.MinDelay + rand.N(p.MaxDelay-p.MinDelay+1)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
