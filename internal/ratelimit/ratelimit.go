package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limiter is a sliding-window rate limiter that tracks timestamps of
// admitted calls. Acquire blocks until the call fits in the window, so
// callers never have to handle a rejection.
type Limiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	calls    []time.Time

	// Injectable for tests
	now   func() time.Time
	sleep func(time.Duration)
}

// New creates a Limiter admitting at most capacity calls per window.
func New(capacity int, window time.Duration) (*Limiter, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ratelimit: capacity must be positive, got %d", capacity)
	}
	if window <= 0 {
		return nil, fmt.Errorf("ratelimit: window must be positive, got %v", window)
	}

	return &Limiter{
		capacity: capacity,
		window:   window,
		calls:    make([]time.Time, 0, capacity),
		now:      time.Now,
		sleep:    time.Sleep,
	}, nil
}

// Acquire blocks until one call is admitted, then records it. After it
// returns the caller is authorized for exactly one unit of guarded work.
// The recorded timestamp reflects admission time, not completion time.
func (l *Limiter) Acquire() {
	for {
		l.mu.Lock()
		now := l.now()
		l.prune(now)

		if len(l.calls) < l.capacity {
			l.calls = append(l.calls, now)
			l.mu.Unlock()
			return
		}

		// Window is full: wait until the oldest admission expires.
		// Clamp so a backward clock jump never yields a negative sleep.
		wait := l.calls[0].Add(l.window).Sub(now)
		l.mu.Unlock()

		if wait < 0 {
			wait = 0
		}
		l.sleep(wait)
	}
}

// prune drops admissions that have fallen out of the window.
// Caller must hold l.mu.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	valid := l.calls[:0]
	for _, t := range l.calls {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	l.calls = valid
}

// Capacity returns the maximum admissions per window.
func (l *Limiter) Capacity() int {
	return l.capacity
}

// Window returns the window duration.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Pending returns how many admissions are currently inside the window.
func (l *Limiter) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune(l.now())
	return len(l.calls)
}
