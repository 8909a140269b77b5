package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// RetryPolicy bounds how often a failed call is repeated and how long to wait between tries.
// Backoff[i] is the wait before attempt i+2; the last entry repeats when attempts outnumber it.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     []time.Duration
}

// NoRetry runs a call exactly once.
var NoRetry = RetryPolicy{MaxAttempts: 1}

// Wait returns the pause before the given retry (1-based: retry 1 follows the first failure).
func (p RetryPolicy) Wait(retry int) time.Duration {
	if len(p.Backoff) == 0 || retry < 1 {
		return 0
	}
	if retry > len(p.Backoff) {
		return p.Backoff[len(p.Backoff)-1]
	}
	return p.Backoff[retry-1]
}

// Do runs fn until it succeeds, returns a non-retryable error, or attempts run out.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		err = fn(ctx)
		if err == nil || !Retryable(err) || i == attempts {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		select {
		case <-time.After(p.Wait(i)):
		case <-ctx.Done():
			return err
		}
	}
	return err
}

// Retryable reports whether err is transient: 5xx, 429, timeouts and transport failures.
// Other 4xx responses and a cancelled caller are final.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}
