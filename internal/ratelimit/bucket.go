package ratelimit

import (
	"sync"
	"time"
)

// Result is the outcome of one admission attempt.
type Result struct {
	Admitted bool
	// Remaining is the token count left after an admitted request. Zero for
	// rejected requests.
	Remaining int64
	// RetryAfter is how long the client must wait before the request could
	// succeed. Zero for admitted requests.
	RetryAfter time.Duration
}

// RetryAfterSeconds returns RetryAfter in whole seconds, rounded up so a
// client that waits the advertised interval is never rejected again.
func (r Result) RetryAfterSeconds() int64 {
	seconds := int64(r.RetryAfter / time.Second)
	if r.RetryAfter%time.Second != 0 {
		seconds++
	}
	return seconds
}

// Bucket is a token bucket with interval refill: every elapsed RefillPeriod
// puts RefillQuantity tokens back, capped at Capacity. Refill happens lazily
// on access, so an idle bucket costs nothing between requests.
type Bucket struct {
	mu         sync.Mutex
	policy     Policy
	tokens     int64
	lastRefill time.Time
	now        func() time.Time
}

// NewBucket returns a full bucket governed by the given policy.
func NewBucket(policy Policy) *Bucket {
	return newBucket(policy, time.Now)
}

func newBucket(policy Policy, now func() time.Time) *Bucket {
	return &Bucket{
		policy:     policy,
		tokens:     policy.Capacity,
		lastRefill: now(),
		now:        now,
	}
}

// TryConsume attempts to take cost tokens from the bucket. It never blocks:
// either the tokens are available now and the request is admitted, or the
// caller gets the wait until the next refill that would cover the cost.
func (b *Bucket) TryConsume(cost int64) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.refillLocked(now)

	if b.tokens >= cost {
		b.tokens -= cost
		return Result{Admitted: true, Remaining: b.tokens}
	}

	return Result{RetryAfter: b.waitForLocked(cost, now)}
}

// Tokens reports the current token count after applying any pending refill.
func (b *Bucket) Tokens() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillLocked(b.now())
	return b.tokens
}

func (b *Bucket) refillLocked(now time.Time) {
	elapsed := now.Sub(b.lastRefill)
	if elapsed < b.policy.RefillPeriod {
		return
	}

	periods := int64(elapsed / b.policy.RefillPeriod)
	b.tokens += periods * b.policy.RefillQuantity
	if b.tokens > b.policy.Capacity {
		b.tokens = b.policy.Capacity
	}
	b.lastRefill = b.lastRefill.Add(time.Duration(periods) * b.policy.RefillPeriod)
}

// waitForLocked returns the time until the refill that makes cost tokens
// available. Assumes refillLocked ran for now.
func (b *Bucket) waitForLocked(cost int64, now time.Time) time.Duration {
	missing := cost - b.tokens
	if missing <= 0 {
		return 0
	}
	if b.policy.RefillQuantity <= 0 {
		return b.policy.RefillPeriod
	}

	periods := (missing + b.policy.RefillQuantity - 1) / b.policy.RefillQuantity
	ready := b.lastRefill.Add(time.Duration(periods) * b.policy.RefillPeriod)
	return ready.Sub(now)
}
