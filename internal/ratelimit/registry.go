package ratelimit

import (
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Registry holds one bucket per (client, category) pair. It is bounded two
// ways: a hard entry cap with LRU eviction, and an idle TTL so buckets of
// clients that stopped talking are dropped. Hits touch the entry, keeping
// active clients resident.
type Registry struct {
	policies PolicyTable
	cache    *ttlcache.Cache[string, *Bucket]
}

// RegistryConfig bounds the registry.
type RegistryConfig struct {
	// MaxEntries is the hard cap on live buckets across all clients and
	// categories.
	MaxEntries uint64
	// IdleTTL evicts a bucket untouched for this long. The refill state it
	// carried is lost, so a returning client starts with a full bucket;
	// that only ever favors the client.
	IdleTTL time.Duration
}

// NewRegistry builds the registry and starts its eviction loop. Call Close to
// stop it.
func NewRegistry(policies PolicyTable, cfg RegistryConfig) *Registry {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, *Bucket](cfg.IdleTTL),
		ttlcache.WithCapacity[string, *Bucket](cfg.MaxEntries),
	)
	go cache.Start()

	return &Registry{
		policies: policies,
		cache:    cache,
	}
}

// Consume takes one token from the client's bucket for the category, creating
// the bucket on first sight. Creation races resolve inside the cache, so two
// concurrent first requests share a single bucket.
func (r *Registry) Consume(client string, category Category) Result {
	key := fmt.Sprintf("%s:%s", client, category)

	item, _ := r.cache.GetOrSet(key, NewBucket(r.policies.Get(category)))
	return item.Value().TryConsume(1)
}

// Len reports the number of live buckets.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Close stops the eviction loop.
func (r *Registry) Close() {
	r.cache.Stop()
}
