package utils

import (
	"math/rand"
	"sync"
	"time"
)

// RateLimiter inserts a randomized delay between successive page fetches to
// keep the request cadence below detection thresholds.
type RateLimiter struct {
	mu  sync.Mutex
	min time.Duration
	max time.Duration
	rng *rand.Rand
}

// NewRateLimiter creates a RateLimiter that sleeps for a duration drawn
// uniformly from [min, max] on every Wait call.
func NewRateLimiter(min, max time.Duration) *RateLimiter {
	if max < min {
		max = min
	}
	return &RateLimiter{
		min: min,
		max: max,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait blocks for the next randomized interval.
func (r *RateLimiter) Wait() {
	d := r.interval()
	if d > 0 {
		time.Sleep(d)
	}
}

func (r *RateLimiter) interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	spread := r.max - r.min
	if spread <= 0 {
		return r.min
	}
	return r.min + time.Duration(r.rng.Int63n(int64(spread)+1))
}
