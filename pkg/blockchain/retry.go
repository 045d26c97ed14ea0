package blockchain

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy bounds the retry loop applied to flaky chain submissions.
// MaxAttempts is the total number of invocations (>= 1). BaseDelay is the
// wait before the first re-attempt; it doubles after every failed attempt.
// AttemptTimeout, when positive, caps each individual attempt; zero leaves
// attempts unbounded apart from the caller's context.
type RetryPolicy struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	AttemptTimeout time.Duration
}

// DefaultRetryPolicy returns the policy used when the caller does not supply
// one: three attempts with a one second base delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}
}

// Retry invokes op until it succeeds or the attempt cap is reached. The first
// success returns immediately with no further delay. After a failed attempt
// the loop sleeps BaseDelay << (attempt-1), so with the default policy the
// waits are 1s and 2s. The final failure is propagated unchanged.
//
// Retry is deliberately oblivious to why op failed: callers that must not
// retry a class of failure (validation, insufficient balance) filter before
// calling it. Attempts are strictly sequential; attempt N+1 starts only after
// attempt N failed and the backoff elapsed. Cancelling ctx during a backoff
// wait aborts the loop with ctx.Err().
func Retry[T any](ctx context.Context, policy RetryPolicy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		attemptCtx, cancel := withTimeout(ctx, policy.AttemptTimeout)
		result, err := op(attemptCtx)
		cancel()
		if err == nil {
			return result, nil
		}
		if attempt >= policy.MaxAttempts {
			return zero, err
		}

		delay := policy.BaseDelay << (attempt - 1)
		zap.L().Debug("operation failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// withTimeout returns ctx unchanged if d <= 0, otherwise returns a child
// context with timeout d. The returned cancel function is always non-nil.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
