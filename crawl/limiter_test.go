package crawl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets limiter tests run without real sleeps.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func newFakeLimiter(delay time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(delay, RateLimit{})
	l.now = clock.Now
	l.sleep = clock.Sleep
	return l, clock
}

func TestLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request does not wait", func(t *testing.T) {
		t.Parallel()
		l, clock := newFakeLimiter(500 * time.Millisecond)
		require.NoError(t, l.Wait(context.Background(), "example.com"))
		assert.Empty(t, clock.sleeps)
	})

	t.Run("consecutive requests are spaced by the delay", func(t *testing.T) {
		t.Parallel()
		l, clock := newFakeLimiter(500 * time.Millisecond)
		ctx := context.Background()

		require.NoError(t, l.Wait(ctx, "example.com"))
		l.Done("example.com")
		clock.now = clock.now.Add(200 * time.Millisecond)
		require.NoError(t, l.Wait(ctx, "EXAMPLE.com"))

		assert.Equal(t, []time.Duration{300 * time.Millisecond}, clock.sleeps)
	})

	t.Run("elapsed delay means no pause", func(t *testing.T) {
		t.Parallel()
		l, clock := newFakeLimiter(500 * time.Millisecond)
		ctx := context.Background()

		require.NoError(t, l.Wait(ctx, "example.com"))
		l.Done("example.com")
		clock.now = clock.now.Add(time.Second)
		require.NoError(t, l.Wait(ctx, "example.com"))
		assert.Empty(t, clock.sleeps)
	})

	t.Run("hosts are tracked separately", func(t *testing.T) {
		t.Parallel()
		l, clock := newFakeLimiter(500 * time.Millisecond)
		ctx := context.Background()

		require.NoError(t, l.Wait(ctx, "a.example.com"))
		l.Done("a.example.com")
		require.NoError(t, l.Wait(ctx, "b.example.com"))
		assert.Empty(t, clock.sleeps)
	})

	t.Run("nil and zero limiters never block", func(t *testing.T) {
		t.Parallel()
		var nilLimiter *Limiter
		assert.NoError(t, nilLimiter.Wait(context.Background(), "example.com"))
		nilLimiter.Done("example.com")

		l := NewLimiter(0, RateLimit{})
		for i := 0; i < 3; i++ {
			assert.NoError(t, l.Wait(context.Background(), "example.com"))
		}
	})

	t.Run("cancelled context aborts the pause", func(t *testing.T) {
		t.Parallel()
		l := NewLimiter(time.Hour, RateLimit{})
		require.NoError(t, l.Wait(context.Background(), "example.com"))
		l.Done("example.com")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, l.Wait(ctx, "example.com"), context.Canceled)
	})

	t.Run("delay counts from the end of the request", func(t *testing.T) {
		t.Parallel()
		l, clock := newFakeLimiter(500 * time.Millisecond)
		ctx := context.Background()

		require.NoError(t, l.Wait(ctx, "example.com"))
		clock.now = clock.now.Add(400 * time.Millisecond) // slow request
		l.Done("example.com")
		require.NoError(t, l.Wait(ctx, "example.com"))

		assert.Equal(t, []time.Duration{500 * time.Millisecond}, clock.sleeps)
	})

	t.Run("rate limit allows a burst then blocks", func(t *testing.T) {
		t.Parallel()
		l := NewLimiter(0, RateLimit{Requests: 2, Window: time.Hour})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		require.NoError(t, l.Wait(ctx, "example.com"))
		require.NoError(t, l.Wait(ctx, "example.com"))
		assert.Error(t, l.Wait(ctx, "example.com"))
	})
}
