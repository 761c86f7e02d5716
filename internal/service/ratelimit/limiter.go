package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	tokens float64
	last   time.Time
}

// Limiter is a per-key token bucket. Every key shares the same capacity and
// refill rate.
type Limiter struct {
	capacity   float64
	refillRate float64 // tokens per second
	idleTTL    time.Duration
	now        func() time.Time

	mu    sync.Mutex
	m     map[string]*bucket
	sweep time.Time
}

func New(capacity, refillPerSec float64) *Limiter {
	if capacity < 1 {
		capacity = 1
	}
	return &Limiter{
		capacity:   capacity,
		refillRate: refillPerSec,
		idleTTL:    10 * time.Minute,
		now:        time.Now,
		m:          make(map[string]*bucket),
	}
}

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evictIdle(now)
	b, ok := l.m[key]
	if !ok {
		b = &bucket{tokens: l.capacity, last: now}
		l.m[key] = b
	}
	elapsed := now.Sub(b.last).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * l.refillRate
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Len reports the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

// evictIdle drops buckets untouched for idleTTL, at most once per idleTTL.
func (l *Limiter) evictIdle(now time.Time) {
	if now.Sub(l.sweep) < l.idleTTL {
		return
	}
	l.sweep = now
	for k, b := range l.m {
		if now.Sub(b.last) >= l.idleTTL {
			delete(l.m, k)
		}
	}
}
