package main

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

// retryPolicy bounds the backoff schedule for scheduled generation.
type retryPolicy struct {
	maxAttempts  int
	baseDelay    time.Duration
	jitterFactor float64
}

// defaultRetryPolicy spaces attempts at 0 s, 30 s, 60 s, 120 s, 240 s
// (with 30% jitter), bounded well below the daily schedule interval.
var defaultRetryPolicy = retryPolicy{
	maxAttempts:  5,
	baseDelay:    30 * time.Second,
	jitterFactor: 0.3,
}

// retryableFunc represents one generation attempt.
type retryableFunc func(ctx context.Context) error

// retryWithBackoff executes fn, retrying storage failures with
// exponential backoff per the policy. Only storage failures are retried,
// configuration errors are permanent and a canceled context stops
// immediately.
func retryWithBackoff(ctx context.Context, log *zap.Logger, policy retryPolicy, fn retryableFunc) error {
	var lastErr error

	for attempt := 0; attempt < policy.maxAttempts; attempt++ {
		if attempt > 0 {
			// Exponential backoff: baseDelay * 2^(attempt-1), plus jitter
			// so parallel deployments do not hammer storage in lockstep.
			delay := policy.baseDelay * time.Duration(1<<(attempt-1))
			jitter := rand.Float64() * float64(delay) * policy.jitterFactor //nolint:gosec // math/rand is sufficient for jitter
			backoffDelay := delay + time.Duration(jitter)

			log.Warn("retrying generation",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoffDelay),
				zap.Error(lastErr),
			)

			select {
			case <-time.After(backoffDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if !isRetryableError(lastErr) {
			return lastErr
		}
	}

	return lastErr
}

// isRetryableError reports whether another attempt can succeed. Storage
// write failures are transient; everything else fails fast, including
// timeouts, so a slow backend surfaces as a clear capacity signal instead
// of a retry storm.
func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return errors.Is(err, simdata.ErrIOFailure)
}
