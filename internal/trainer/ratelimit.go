package trainer

import (
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned when a caller exceeds the chat request ceiling.
var ErrRateLimited = errors.New("too many chat requests")

// RateLimiter rejects requests once more than limit have occurred in the
// trailing window. The clock is injectable for tests.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	now    func() time.Time
	stamps []time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{limit: limit, window: window, now: time.Now}
}

// Allow prunes expired entries and records the current request if it is under
// the ceiling. When the request is rejected it returns the delay after which
// the oldest entry expires.
func (l *RateLimiter) Allow() (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.stamps[:0]
	for _, ts := range l.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	l.stamps = kept

	if len(l.stamps) >= l.limit {
		retryAfter := l.window
		if len(l.stamps) > 0 {
			retryAfter = l.stamps[0].Add(l.window).Sub(now)
		}
		return false, retryAfter
	}

	l.stamps = append(l.stamps, now)
	return true, 0
}
