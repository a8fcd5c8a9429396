package retry

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureSleeps(t *testing.T) *[]time.Duration {
	t.Helper()
	var slept []time.Duration
	orig := sleep
	sleep = func(d time.Duration) { slept = append(slept, d) }
	t.Cleanup(func() { sleep = orig })
	return &slept
}

func TestDoSucceedsAfterRateLimits(t *testing.T) {
	slept := captureSleeps(t)

	policy := Policy{MaxAttempts: 5, BaseDelay: 100 * time.Millisecond}
	calls := 0
	v, err := Do(policy, func() (string, error) {
		calls++
		if calls <= 3 {
			return "", errors.New("HTTP 429 Too Many Requests")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 4, calls)

	// Three failures, three sleeps with strictly increasing delays.
	require.Len(t, *slept, 3)
	assert.Equal(t, 100*time.Millisecond, (*slept)[0])
	assert.Equal(t, 200*time.Millisecond, (*slept)[1])
	assert.Equal(t, 300*time.Millisecond, (*slept)[2])
}

func TestDoPropagatesOtherErrorsImmediately(t *testing.T) {
	slept := captureSleeps(t)

	policy := Policy{MaxAttempts: 5, BaseDelay: time.Second}
	calls := 0
	boom := errors.New("connection refused")
	_, err := Do(policy, func() (int, error) {
		calls++
		return 0, boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *slept)
}

func TestDoExhaustsRateLimitBudget(t *testing.T) {
	slept := captureSleeps(t)

	policy := Policy{MaxAttempts: 3, BaseDelay: 50 * time.Millisecond}
	calls := 0
	_, err := Do(policy, func() (int, error) {
		calls++
		return 0, fmt.Errorf("rate limit exceeded (call %d)", calls)
	})

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Contains(t, exhausted.Last.Error(), "call 3")
	assert.Equal(t, 3, calls)

	// No sleep after the final attempt.
	assert.Len(t, *slept, 2)
}

func TestRun(t *testing.T) {
	captureSleeps(t)

	calls := 0
	err := Run(Policy{MaxAttempts: 2, BaseDelay: time.Millisecond}, func() error {
		calls++
		if calls == 1 {
			return errors.New("too many requests")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(errors.New("request failed with status 429: slow down")))
	assert.True(t, IsRateLimited(errors.New("RPC error: Too Many Requests")))
	assert.True(t, IsRateLimited(errors.New("rate limit exceeded")))
	assert.False(t, IsRateLimited(errors.New("invalid address")))
	assert.False(t, IsRateLimited(nil))
}
