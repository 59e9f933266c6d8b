// Package ratelimit implements the request admission gate: per-client,
// per-category token buckets held in a bounded, idle-evicted registry.
package ratelimit

import (
	"time"
)

// Category classifies a request for rate-limiting purposes. Each category has
// its own bucket per client, so a client's burst of note updates cannot starve
// its plain reads.
type Category string

// Request categories, from tightest to most permissive limit.
const (
	// CategoryAuth covers signup, login and refresh. Tightest limit since
	// these endpoints are the brute-force surface.
	CategoryAuth Category = "AUTH"
	// CategoryNotesCreate covers note creation.
	CategoryNotesCreate Category = "NOTES_CREATE"
	// CategoryNotesUpdate covers note updates.
	CategoryNotesUpdate Category = "NOTES_UPDATE"
	// CategoryAPI is the default for everything else authenticated,
	// including note restore (which shares a verb with creation but is
	// deliberately not counted against the creation budget).
	CategoryAPI Category = "API"
)

// Policy describes one category's bucket shape: Capacity tokens, with
// RefillQuantity tokens added back per elapsed RefillPeriod.
type Policy struct {
	Capacity       int64
	RefillQuantity int64
	RefillPeriod   time.Duration
}

// PolicyTable maps categories to their fixed policies. Built once at startup;
// not mutable at runtime.
type PolicyTable map[Category]Policy

// Get returns the policy for a category, falling back to the API policy for
// unknown categories.
func (t PolicyTable) Get(category Category) Policy {
	if policy, ok := t[category]; ok {
		return policy
	}
	return t[CategoryAPI]
}

// NewPolicyTable builds the per-category policy table from per-minute budgets.
// Capacity and refill quantity are equal, so a full budget becomes available
// again each minute.
func NewPolicyTable(authPerMinute, createPerMinute, updatePerMinute, apiPerMinute int) PolicyTable {
	perMinute := func(n int) Policy {
		return Policy{
			Capacity:       int64(n),
			RefillQuantity: int64(n),
			RefillPeriod:   time.Minute,
		}
	}

	return PolicyTable{
		CategoryAuth:        perMinute(authPerMinute),
		CategoryNotesCreate: perMinute(createPerMinute),
		CategoryNotesUpdate: perMinute(updatePerMinute),
		CategoryAPI:         perMinute(apiPerMinute),
	}
}
