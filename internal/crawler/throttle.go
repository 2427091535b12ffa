package crawler

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle enforces a minimum delay between the end of one request and the
// start of the next. It holds at most one token.
type Throttle struct {
	mu      sync.Mutex
	delay   time.Duration
	limiter *rate.Limiter
}

func NewThrottle(delay time.Duration) *Throttle {
	return &Throttle{delay: delay, limiter: newLimiter(delay)}
}

func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// Wait blocks until a request may start.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()
	l := t.limiter
	t.mu.Unlock()
	return l.Wait(ctx)
}

// Done marks the end of a request; the next Wait returns no earlier than
// delay from now.
func (t *Throttle) Done() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.limiter = newLimiter(t.delay)
	t.limiter.Allow()
}
