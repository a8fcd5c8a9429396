// Package retry wraps calls to rate-limited RPC endpoints.
//
// Public RPC providers (Solana mainnet, mempool.space) throttle aggressively,
// so every network call that can hit a 429 goes through Do or Run. Only
// rate-limit errors are retried; anything else propagates on the first
// attempt so real failures surface immediately.
package retry

import (
	"fmt"
	"strings"
	"time"
)

// Policy controls how many attempts are made and how long to back off
// between them. The backoff schedule is linear: after the n-th failed
// attempt the wrapper sleeps BaseDelay * n.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultPolicy matches the limits of the public endpoints we talk to.
var DefaultPolicy = Policy{
	MaxAttempts: 5,
	BaseDelay:   2 * time.Second,
}

// sleep is swapped out in tests.
var sleep = time.Sleep

// ExhaustedError is returned when every attempt failed with a rate-limit
// error. Last holds the error from the final attempt.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d rate-limited attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// IsRateLimited reports whether err looks like a rate-limit rejection from
// an RPC endpoint. Providers are inconsistent about how they say it, so
// this matches the common markers in the message.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "rate limit")
}

// Do runs op until it succeeds, retrying rate-limited failures with linearly
// increasing delays. Non-rate-limit errors are returned immediately without
// sleeping. After MaxAttempts rate-limited failures it returns
// *ExhaustedError.
func Do[T any](p Policy, op func() (T, error)) (T, error) {
	var zero T
	var last error

	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultPolicy.MaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultPolicy.BaseDelay
	}

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		v, err := op()
		if err == nil {
			return v, nil
		}
		if !IsRateLimited(err) {
			return zero, err
		}
		last = err
		if attempt < p.MaxAttempts {
			sleep(p.BaseDelay * time.Duration(attempt))
		}
	}

	return zero, &ExhaustedError{Attempts: p.MaxAttempts, Last: last}
}

// Run is Do for operations with no result.
func Run(p Policy, op func() error) error {
	_, err := Do(p, func() (struct{}, error) {
		return struct{}{}, op()
	})
	return err
}
