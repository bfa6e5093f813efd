package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork reports that a remote cache backend could not be reached.
var ErrNetwork = errors.New("network error")

// RetryableError marks a backend failure as transient.
type RetryableError struct{ Err error }

// Retryable marks err as transient. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

var (
	retryAttempts = 3
	retryDelay    = 100 * time.Millisecond // doubled after every failed attempt
)

// RetryWithBackoff calls fn until it succeeds, fails permanently or has
// been tried retryAttempts times. Waiting between attempts stops early when
// ctx is done.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
