// Package retry provides a small retry-with-backoff policy shared by the
// extraction and submission clients.
package retry

import (
	"context"
	"errors"
	"net"
	"time"
)

// Policy describes how many times an operation is attempted and how long
// to wait between attempts. The delay doubles after every failed attempt.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the wait before the second attempt.
	BaseDelay time.Duration
	// Retryable reports whether an error is worth another attempt.
	// A nil Retryable retries nothing.
	Retryable func(error) bool
}

// Default is the policy both external backends use: one initial attempt
// plus two retries, starting at one second.
func Default(retryable func(error) bool) Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Retryable:   retryable,
	}
}

// Do runs fn until it succeeds, the policy is exhausted, or the error is
// not retryable. The last error is returned on exhaustion. Context
// cancellation aborts the backoff sleep immediately.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := p.sleep(ctx, attempt-1); err != nil {
				return err
			}
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
		if p.Retryable == nil || !p.Retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (p Policy) sleep(ctx context.Context, attempt int) error {
	delay := p.BaseDelay * time.Duration(1<<attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Timeout reports whether err is a network timeout or a context deadline,
// the conditions both backends treat as transient.
func Timeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
