package ratelimiter

import (
	"context"
	"sync"
	"time"

	"github.com/itchan-dev/postadmin/shared/logger"
)

// bucket is a token bucket for one key
type bucket struct {
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

// KeyedRateLimiter keeps an independent token bucket per key.
// Buckets idle for longer than idleTTL are dropped by Sweep.
type KeyedRateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens per second
	capacity float64
	idleTTL  time.Duration
	now      func() time.Time
}

func New(rate, capacity float64, idleTTL time.Duration) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Allow takes one token from key's bucket if available.
func (l *KeyedRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastRefill: now}
		l.buckets[key] = b
	}
	b.lastSeen = now

	b.tokens += now.Sub(b.lastRefill).Seconds() * l.rate
	if b.tokens > l.capacity {
		b.tokens = l.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Sweep drops buckets not used within idleTTL and returns how many were removed.
func (l *KeyedRateLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.idleTTL)
	removed := 0
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

func (l *KeyedRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// FivePerSecond allows short bursts of admin actions from one client.
func FivePerSecond() *KeyedRateLimiter { return New(5, 5, time.Hour) }

// StartCleanup sweeps idle buckets every interval until ctx is done.
func (l *KeyedRateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := l.Sweep(); n > 0 {
					logger.Log.Debug("rate limiter swept idle buckets",
						"component", "ratelimiter",
						"removed", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
