// Package ratelimit paces outbound page fetches. Retail sites throttle or
// block clients that hammer them, so every fetch waits behind a limiter.
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Limiter gates one action per Wait call.
type Limiter interface {
	Wait(ctx context.Context) error
	SetDelay(min, max time.Duration)
}

// SimpleLimiter enforces a randomized delay between consecutive actions.
// Jitter keeps the request cadence from looking mechanical.
type SimpleLimiter struct {
	mu         sync.Mutex
	minDelay   time.Duration
	maxDelay   time.Duration
	lastAction time.Time
	jitter     bool
}

func NewSimpleLimiter(minDelay, maxDelay time.Duration) *SimpleLimiter {
	return &SimpleLimiter{
		minDelay: minDelay,
		maxDelay: maxDelay,
		jitter:   true,
	}
}

func (l *SimpleLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	elapsed := time.Since(l.lastAction)
	delay := l.nextDelay()

	if elapsed < delay {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay - elapsed):
		}
	}

	l.lastAction = time.Now()
	return nil
}

func (l *SimpleLimiter) SetDelay(min, max time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.minDelay = min
	l.maxDelay = max
}

func (l *SimpleLimiter) nextDelay() time.Duration {
	if !l.jitter || l.maxDelay <= l.minDelay {
		return l.minDelay
	}
	delta := l.maxDelay - l.minDelay
	return l.minDelay + time.Duration(rand.Int63n(int64(delta)))
}

// AdaptiveLimiter speeds up after sustained success and backs off after
// repeated errors, within fixed floor and ceiling delays.
type AdaptiveLimiter struct {
	*SimpleLimiter
	errorCount    int
	successCount  int
	maxErrorCount int
	backoffFactor float64
}

func NewAdaptiveLimiter(minDelay, maxDelay time.Duration) *AdaptiveLimiter {
	return &AdaptiveLimiter{
		SimpleLimiter: NewSimpleLimiter(minDelay, maxDelay),
		maxErrorCount: 3,
		backoffFactor: 1.5,
	}
}

// RecordSuccess trims the floor delay after five consecutive successes,
// never below one second.
func (a *AdaptiveLimiter) RecordSuccess() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.successCount++
	a.errorCount = 0

	if a.successCount > 5 {
		newMin := time.Duration(float64(a.minDelay) * 0.9)
		if newMin < time.Second {
			newMin = time.Second
		}
		a.minDelay = newMin
		a.successCount = 0
	}
}

// RecordError widens both delay bounds once three consecutive errors
// accumulate, capped at 60s/120s.
func (a *AdaptiveLimiter) RecordError() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.errorCount++
	a.successCount = 0

	if a.errorCount >= a.maxErrorCount {
		newMin := time.Duration(float64(a.minDelay) * a.backoffFactor)
		newMax := time.Duration(float64(a.maxDelay) * a.backoffFactor)

		if newMin > 60*time.Second {
			newMin = 60 * time.Second
		}
		if newMax > 120*time.Second {
			newMax = 120 * time.Second
		}

		a.minDelay = newMin
		a.maxDelay = newMax
		a.errorCount = 0
	}
}
