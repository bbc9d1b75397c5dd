package imageclient

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLimiterStopped is returned to callers waiting on a stopped Limiter.
var ErrLimiterStopped = errors.New("imageclient: rate limiter stopped")

// Limiter is a token bucket shared by every client talking to the same
// upstream account. Tokens are refilled from elapsed time on demand.
// A nil *Limiter never blocks.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	burst    float64
	tokens   float64
	last     time.Time

	stopped  chan struct{}
	stopOnce sync.Once
}

// NewLimiter allows rps requests per second with bursts of up to burst.
// It returns nil when rps <= 0.
func NewLimiter(rps float64, burst int) *Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	interval := time.Duration(float64(time.Second) / rps)
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Limiter{
		interval: interval,
		burst:    float64(burst),
		tokens:   float64(burst),
		last:     time.Now(),
		stopped:  make(chan struct{}),
	}
}

// Wait takes one token, sleeping until one is available.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	for {
		wait := l.reserve(time.Now())
		if wait == 0 {
			return nil
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-l.stopped:
			timer.Stop()
			return ErrLimiterStopped
		case <-timer.C:
		}
	}
}

// reserve takes a token and returns 0, or returns how long until the
// next token is due.
func (l *Limiter) reserve(now time.Time) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens += float64(now.Sub(l.last)) / float64(l.interval)
	if l.tokens > l.burst {
		l.tokens = l.burst
	}
	l.last = now
	if l.tokens >= 1 {
		l.tokens--
		return 0
	}
	return time.Duration((1 - l.tokens) * float64(l.interval))
}

// Stop releases every waiter. It is safe to call more than once.
func (l *Limiter) Stop() {
	if l == nil {
		return
	}
	l.stopOnce.Do(func() { close(l.stopped) })
}

// RateLimit makes every request take a token from l first.
func RateLimit(l *Limiter) Middleware {
	return func(next Client) Client {
		if l == nil {
			return next
		}
		return &rateLimited{next: next, l: l}
	}
}

type rateLimited struct {
	next Client
	l    *Limiter
}

func (c *rateLimited) Name() string { return c.next.Name() }

func (c *rateLimited) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.l.Wait(ctx); err != nil {
		return "", err
	}
	return c.next.Generate(ctx, prompt)
}
