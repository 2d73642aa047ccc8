// Package cache provides a small TTL-based memoization cache used to avoid
// redundant external lookups within a burst of triggers.
package cache

import (
	"sync"
	"time"
)

// Cache memoizes values for a fixed time window. Entries are lazily treated
// as stale on access; there is no background purging and no eviction policy
// beyond TTL expiry.
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]entry[V]
	ttl   time.Duration
	now   func() time.Time
}

type entry[V any] struct {
	value    V
	cachedAt time.Time
}

// New creates a cache whose entries expire ttl after they were stored.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return NewWithClock[K, V](ttl, time.Now)
}

// NewWithClock creates a cache with an injected time source, so tests can
// run on virtual time.
func NewWithClock[K comparable, V any](ttl time.Duration, now func() time.Time) *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]entry[V]),
		ttl:   ttl,
		now:   now,
	}
}

// Get returns the value stored under key and true when the entry is still
// within its TTL. An expired or missing entry returns the zero value and
// false; the caller recomputes and overwrites it via Put.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !ok || c.now().Sub(e.cachedAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, unconditionally overwriting any prior entry
// and resetting its age.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[V]{value: value, cachedAt: c.now()}
}

// Len returns the number of stored entries, including ones that have gone
// stale but have not been overwritten.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
