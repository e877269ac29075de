package iohttp

import (
	"context"
	"errors"
	"time"
)

// retryableError marks a failure as transient so retry attempts it again.
// Network errors and 5xx responses are transient; 4xx and decode failures
// are not.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// retry executes fn up to attempts times with exponential backoff. Only
// errors wrapped in retryableError are retried; other errors return
// immediately. The delay doubles after each failed attempt.
func retry(
	ctx context.Context,
	attempts int,
	delay time.Duration,
	fn func() error,
) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}

	return lastErr
}

func isRetryable(err error) bool {
	return errors.As(err, new(*retryableError))
}
