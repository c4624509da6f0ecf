// ABOUTME: Retry utilities for oracle calls with exponential backoff
// ABOUTME: Used by the block advisor; intent classification never retries
package util

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// maxBackoff caps a single wait between attempts
const maxBackoff = 30 * time.Second

// CalculateBackoff returns exponential backoff with jitter
// Base delay is doubled each attempt, with random jitter up to 25%
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseDelay <= 0 {
		return 0
	}
	// Cap attempt to avoid overflow in bit shift
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}
	half := int64(backoff) / 2
	if half <= 0 {
		return backoff
	}
	jitter := time.Duration(rand.Int64N(half)) - backoff/4
	return backoff + jitter
}

// Do runs fn up to maxRetries+1 times, sleeping CalculateBackoff between attempts.
// It stops early when ctx is done and returns the last error wrapped with the attempt count.
func Do(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(CalculateBackoff(baseDelay, attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("retry cancelled after %d attempts: %w", attempt, ctx.Err())
			case <-timer.C:
			}
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
	}

	return fmt.Errorf("failed after %d attempts: %w", maxRetries+1, lastErr)
}
