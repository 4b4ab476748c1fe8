package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestBreaker(threshold int, cooldown time.Duration) (*Breaker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	b := NewBreaker("test", threshold, cooldown)
	b.now = clock.now
	return b, clock
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	b, _ := newTestBreaker(3, time.Minute)
	transient := &StatusError{StatusCode: 503}

	for range 2 {
		require.NoError(t, b.Allow())
		b.Record(transient)
	}
	assert.Equal(t, Closed, b.State())

	require.NoError(t, b.Allow())
	b.Record(transient)
	assert.Equal(t, Open, b.State())
	assert.ErrorIs(t, b.Allow(), ErrOpen)
}

func TestBreaker_PermanentErrorsDoNotTrip(t *testing.T) {
	t.Parallel()

	b, _ := newTestBreaker(1, time.Minute)
	require.NoError(t, b.Allow())
	b.Record(&StatusError{StatusCode: 404})
	b.Record(errors.New("decode"))
	assert.Equal(t, Closed, b.State())
}

func TestBreaker_HalfOpenTrial(t *testing.T) {
	t.Parallel()

	b, clock := newTestBreaker(1, time.Minute)
	require.NoError(t, b.Allow())
	b.Record(&StatusError{StatusCode: 500})
	require.Equal(t, Open, b.State())

	clock.t = clock.t.Add(2 * time.Minute)
	require.NoError(t, b.Allow())
	assert.Equal(t, HalfOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrOpen, "only one trial call at a time")

	b.Record(nil)
	assert.Equal(t, Closed, b.State())
	assert.NoError(t, b.Allow())
}

func TestBreaker_FailedTrialReopens(t *testing.T) {
	t.Parallel()

	b, clock := newTestBreaker(1, time.Minute)
	require.NoError(t, b.Allow())
	b.Record(&StatusError{StatusCode: 500})

	clock.t = clock.t.Add(2 * time.Minute)
	require.NoError(t, b.Allow())
	b.Record(&StatusError{StatusCode: 502})
	assert.Equal(t, Open, b.State())
	assert.ErrorIs(t, b.Allow(), ErrOpen)
}

func TestBreakerState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "open", Open.String())
	assert.Equal(t, "half-open", HalfOpen.String())
	assert.Equal(t, "unknown", BreakerState(9).String())
}
