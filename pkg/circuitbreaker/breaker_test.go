package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend down")

func failing() error { return errBackend }
func succeeding() error { return nil }

func newTestBreaker(timeout time.Duration) *CircuitBreaker {
	return New("test", Config{
		MaxRequests:      1,
		Timeout:          timeout,
		FailureThreshold: 3,
		SuccessThreshold: 1,
	})
}

func TestExecutePassesThroughWhenClosed(t *testing.T) {
	cb := newTestBreaker(time.Minute)

	require.NoError(t, cb.Execute(context.Background(), succeeding))
	assert.ErrorIs(t, cb.Execute(context.Background(), failing), errBackend)
	assert.Equal(t, StateClosed, cb.State())
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := newTestBreaker(time.Minute)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(context.Background(), failing), errBackend)
	}
	assert.Equal(t, StateOpen, cb.State())

	// Calls while open are rejected without invoking fn.
	calls := 0
	err := cb.Execute(context.Background(), func() error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 0, calls)
}

func TestSuccessResetsFailureStreak(t *testing.T) {
	cb := newTestBreaker(time.Minute)

	cb.Execute(context.Background(), failing)
	cb.Execute(context.Background(), failing)
	cb.Execute(context.Background(), succeeding)
	cb.Execute(context.Background(), failing)
	cb.Execute(context.Background(), failing)

	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenProbeClosesOnSuccess(t *testing.T) {
	cb := newTestBreaker(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		cb.Execute(context.Background(), failing)
	}
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(15 * time.Millisecond)
	require.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(context.Background(), succeeding))
	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenProbeReopensOnFailure(t *testing.T) {
	cb := newTestBreaker(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		cb.Execute(context.Background(), failing)
	}
	time.Sleep(15 * time.Millisecond)
	require.Equal(t, StateHalfOpen, cb.State())

	assert.ErrorIs(t, cb.Execute(context.Background(), failing), errBackend)
	assert.Equal(t, StateOpen, cb.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
}
