package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a remote backend cannot be reached.
// Callers treat it as a cache miss and solve anyway.
var ErrUnavailable = errors.New("cache backend unavailable")

type retryableError struct{ err error }

func (e retryableError) Error() string { return e.err.Error() }
func (e retryableError) Unwrap() error { return e.err }

// Retryable marks err as transient so that [Backoff.Do] tries again.
// Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryableError{err}
}

// IsRetryable reports whether err, or any error it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var re retryableError
	return errors.As(err, &re)
}

// Backoff retries an operation with a doubling delay between attempts.
type Backoff struct {
	Attempts int
	Delay    time.Duration // before the second attempt
}

// DefaultBackoff is used when connecting to Redis: three attempts over
// roughly 750ms, enough to ride out a backend restarting next to the server.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 250 * time.Millisecond}

// Do calls fn until it succeeds, returns an error not marked [Retryable], or
// the attempts run out. The last error is returned. Cancelling ctx stops the
// wait between attempts and returns ctx.Err().
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return err
}

// RetryWithBackoff runs fn under [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Do(ctx, fn)
}
