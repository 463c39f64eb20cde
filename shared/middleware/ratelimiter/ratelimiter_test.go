package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(rate, capacity float64, ttl time.Duration) (*KeyedRateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := New(rate, capacity, ttl)
	l.now = clock.now
	return l, clock
}

func TestAllow(t *testing.T) {
	l, clock := newTestLimiter(1, 2, time.Hour)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"), "bucket should be empty after burst")

	// keys are independent
	assert.True(t, l.Allow("b"))

	clock.advance(time.Second)
	assert.True(t, l.Allow("a"), "one token refilled after a second")
	assert.False(t, l.Allow("a"))

	clock.advance(time.Minute)
	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"), "refill never exceeds capacity")
}

func TestSweep(t *testing.T) {
	l, clock := newTestLimiter(1, 1, time.Minute)

	l.Allow("old")
	clock.advance(2 * time.Minute)
	l.Allow("fresh")

	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())
	assert.True(t, l.Allow("old"), "swept key starts with a full bucket")
}

func TestStartCleanup(t *testing.T) {
	l := New(1, 1, time.Millisecond)
	l.Allow("a")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.StartCleanup(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, 5*time.Millisecond)
}
