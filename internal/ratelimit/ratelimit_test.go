package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleLimiterEnforcesDelay(t *testing.T) {
	l := NewSimpleLimiter(30*time.Millisecond, 30*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx))

	start := time.Now()
	require.NoError(t, l.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
}

func TestSimpleLimiterContextCancellation(t *testing.T) {
	l := NewSimpleLimiter(time.Minute, time.Minute)

	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.Wait(ctx), context.DeadlineExceeded)
}

func TestAdaptiveLimiterBacksOffAfterErrors(t *testing.T) {
	l := NewAdaptiveLimiter(2*time.Second, 4*time.Second)

	for i := 0; i < 3; i++ {
		l.RecordError()
	}

	assert.Equal(t, 3*time.Second, l.minDelay)
	assert.Equal(t, 6*time.Second, l.maxDelay)
}

func TestAdaptiveLimiterSpeedsUpAfterSuccesses(t *testing.T) {
	l := NewAdaptiveLimiter(10*time.Second, 20*time.Second)

	for i := 0; i < 6; i++ {
		l.RecordSuccess()
	}

	assert.Equal(t, 9*time.Second, l.minDelay)
}

func TestAdaptiveLimiterFloorAndCeiling(t *testing.T) {
	l := NewAdaptiveLimiter(1100*time.Millisecond, 2*time.Second)

	// repeated successes never push the floor below one second
	for i := 0; i < 60; i++ {
		l.RecordSuccess()
	}
	assert.GreaterOrEqual(t, l.minDelay, time.Second)

	// repeated errors never push past the hard caps
	for i := 0; i < 60; i++ {
		l.RecordError()
	}
	assert.LessOrEqual(t, l.minDelay, 60*time.Second)
	assert.LessOrEqual(t, l.maxDelay, 120*time.Second)
}

func TestSuccessResetsErrorStreak(t *testing.T) {
	l := NewAdaptiveLimiter(2*time.Second, 4*time.Second)

	l.RecordError()
	l.RecordError()
	l.RecordSuccess()
	l.RecordError()
	l.RecordError()

	// the streak never reached three, so no backoff happened
	assert.Equal(t, 2*time.Second, l.minDelay)
}
