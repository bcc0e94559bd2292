package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork marks failures to reach a remote backend.
	ErrNetwork = errors.New("network error")
	// ErrUnknownBackend is returned by [Open] for unsupported backends.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// RetryableError marks an error that [Backoff.Retry] may retry.
type RetryableError struct{ Err error }

// Retryable wraps err as a [RetryableError]. It returns nil for nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err or anything it wraps is a
// [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff retries an operation a fixed number of times, doubling the
// delay after each failed attempt.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// connectBackoff paces the PING when dialing Redis.
var connectBackoff = Backoff{Attempts: 4, Delay: 250 * time.Millisecond}

// Retry calls fn until it succeeds, returns an error that is not
// retryable, or the attempts run out. It returns the last error, or
// ctx.Err() when ctx ends while waiting.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	n := max(b.Attempts, 1)
	delay := b.Delay
	var err error
	for i := range n {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == n-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
