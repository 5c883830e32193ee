package crawl

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimit configures an optional token bucket per host on top of the
// fixed delay. Zero values disable it.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

// Limiter spaces out requests to the same host.
type Limiter struct {
	delay       time.Duration
	rate        RateLimit
	rateEnabled bool

	mu       sync.Mutex
	last     map[string]time.Time
	limiters map[string]*rate.Limiter

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewLimiter creates a limiter enforcing delay between requests to one host
// and, when rateCfg is set, at most rateCfg.Requests per rateCfg.Window.
func NewLimiter(delay time.Duration, rateCfg RateLimit) *Limiter {
	l := &Limiter{
		delay:    delay,
		last:     make(map[string]time.Time),
		limiters: make(map[string]*rate.Limiter),
		now:      time.Now,
		sleep:    sleepContext,
	}
	if rateCfg.Requests > 0 && rateCfg.Window > 0 {
		l.rateEnabled = true
		l.rate = rateCfg
	}
	return l
}

// Wait blocks until a request to host is allowed or ctx is done: the delay
// must have passed since the last Done for host. Before the first Done it
// never waits on the delay.
func (l *Limiter) Wait(ctx context.Context, host string) error {
	if l == nil || host == "" {
		return nil
	}
	host = strings.ToLower(host)

	if l.delay <= 0 && !l.rateEnabled {
		return nil
	}

	var pause time.Duration
	var limiter *rate.Limiter

	l.mu.Lock()
	if l.delay > 0 {
		if last, ok := l.last[host]; ok {
			if rest := last.Add(l.delay).Sub(l.now()); rest > 0 {
				pause = rest
			}
		}
	}
	if l.rateEnabled {
		limiter = l.limiterLocked(host)
	}
	l.mu.Unlock()

	if pause > 0 {
		if err := l.sleep(ctx, pause); err != nil {
			return err
		}
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Done records that a request to host has finished. The next Wait for host
// pauses for the full delay counted from this moment, however long the
// request itself took.
func (l *Limiter) Done(host string) {
	if l == nil || host == "" {
		return
	}
	l.mu.Lock()
	l.last[strings.ToLower(host)] = l.now()
	l.mu.Unlock()
}

func (l *Limiter) limiterLocked(host string) *rate.Limiter {
	if limiter, ok := l.limiters[host]; ok {
		return limiter
	}
	interval := l.rate.Window / time.Duration(l.rate.Requests)
	if interval <= 0 {
		interval = time.Millisecond
	}
	limiter := rate.NewLimiter(rate.Every(interval), l.rate.Requests)
	l.limiters[host] = limiter
	return limiter
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
