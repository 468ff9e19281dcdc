// Package retry provides a generic bounded-retry wrapper with a fixed delay between attempts.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy configures Do.
type Policy struct {
	MaxAttempts int                                              // total attempts, including the first
	Delay       time.Duration                                    // fixed wait between attempts; no backoff, no jitter
	Retryable   func(err error) bool                             // nil treats every error as retryable
	Sleep       func(ctx context.Context, d time.Duration) error // nil uses a context-aware timer
	OnRetry     func(attempt int, err error)                     // called after a failed attempt that will be retried
}

// ExhaustedError is returned when every attempt failed or a non-retryable error stopped the loop.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempt(s): %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Do calls fn until it succeeds or the policy is exhausted.
func Do[T any](ctx context.Context, policy Policy, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T

	maxAttempts := policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := policy.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn(ctx, attempt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == maxAttempts || (policy.Retryable != nil && !policy.Retryable(err)) {
			return zero, &ExhaustedError{Attempts: attempt, Last: lastErr}
		}

		if policy.OnRetry != nil {
			policy.OnRetry(attempt, err)
		}
		if err := sleep(ctx, policy.Delay); err != nil {
			return zero, &ExhaustedError{Attempts: attempt, Last: err}
		}
	}

	return zero, &ExhaustedError{Attempts: maxAttempts, Last: lastErr}
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
