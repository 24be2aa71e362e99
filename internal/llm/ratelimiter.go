package llm

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a two-bucket (per-minute and per-day) limiter in front of
// the provider API. Buckets refill wholesale when their window elapses.
type RateLimiter struct {
	perMinute int
	perDay    int

	mu           sync.Mutex
	minuteTokens int
	minuteRefill time.Time
	dayTokens    int
	dayRefill    time.Time
}

// NewRateLimiter creates a limiter allowing perMinute and perDay requests.
// Non-positive limits disable the corresponding bucket.
func NewRateLimiter(perMinute, perDay int) *RateLimiter {
	now := time.Now()
	return &RateLimiter{
		perMinute:    perMinute,
		perDay:       perDay,
		minuteTokens: perMinute,
		minuteRefill: now,
		dayTokens:    perDay,
		dayRefill:    now,
	}
}

// Wait blocks until a request may proceed or the context is cancelled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		if rl.tryConsume() {
			return nil
		}
		wait := rl.waitTime()
		if wait <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (rl *RateLimiter) tryConsume() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refillLocked()

	minuteOK := rl.perMinute <= 0 || rl.minuteTokens > 0
	dayOK := rl.perDay <= 0 || rl.dayTokens > 0
	if !minuteOK || !dayOK {
		return false
	}
	if rl.perMinute > 0 {
		rl.minuteTokens--
	}
	if rl.perDay > 0 {
		rl.dayTokens--
	}
	return true
}

func (rl *RateLimiter) refillLocked() {
	now := time.Now()
	if now.Sub(rl.minuteRefill) >= time.Minute {
		rl.minuteTokens = rl.perMinute
		rl.minuteRefill = now
	}
	if now.Sub(rl.dayRefill) >= 24*time.Hour {
		rl.dayTokens = rl.perDay
		rl.dayRefill = now
	}
}

func (rl *RateLimiter) waitTime() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	var wait time.Duration
	if rl.perMinute > 0 && rl.minuteTokens <= 0 {
		wait = time.Minute - now.Sub(rl.minuteRefill)
	}
	if rl.perDay > 0 && rl.dayTokens <= 0 {
		if d := 24*time.Hour - now.Sub(rl.dayRefill); d > wait {
			wait = d
		}
	}
	return wait
}
