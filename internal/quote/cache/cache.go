package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long a cached payload stays valid.
const DefaultTTL = 30 * time.Minute

// Entry is a cached payload and the time it was stored.
type Entry[V any] struct {
	Value    V
	StoredAt time.Time
}

// Cache is an in-memory keyed store with lazy TTL expiry. Entries are never
// removed on read; a stale entry is overwritten by the next Set for its key.
// Callers decide whether a stale entry counts as a miss (see IsValid).
type Cache[V any] struct {
	ttl      time.Duration
	maxItems int
	now      func() time.Time

	mu    sync.RWMutex
	items map[string]Entry[V]
}

// Option configures a Cache.
type Option[V any] func(*Cache[V])

// WithClock replaces time.Now, mainly for tests.
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *Cache[V]) { c.now = now }
}

// WithMaxItems bounds the number of keys. When a new key would exceed the
// bound, stale entries are swept first and then the oldest entry is dropped.
// Zero or negative means unbounded.
func WithMaxItems[V any](n int) Option[V] {
	return func(c *Cache[V]) { c.maxItems = n }
}

// New returns an empty cache. A non-positive ttl falls back to DefaultTTL.
func New[V any](ttl time.Duration, opts ...Option[V]) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache[V]{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]Entry[V]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the entry stored under key, valid or not.
func (c *Cache[V]) Get(key string) (Entry[V], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[key]
	return e, ok
}

// Set stores v under key, unconditionally replacing any previous entry.
func (c *Cache[V]) Set(key string, v V) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[key]; !exists && c.maxItems > 0 && len(c.items) >= c.maxItems {
		c.evictLocked(now)
	}
	c.items[key] = Entry[V]{Value: v, StoredAt: now}
}

// IsValid reports whether e is younger than the TTL.
func (c *Cache[V]) IsValid(e Entry[V]) bool {
	return c.now().Sub(e.StoredAt) < c.ttl
}

// Len reports the number of stored keys, stale ones included.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// TTL returns the validity window.
func (c *Cache[V]) TTL() time.Duration { return c.ttl }

// evictLocked frees at least one slot. c.mu must be held.
func (c *Cache[V]) evictLocked(now time.Time) {
	for k, e := range c.items {
		if now.Sub(e.StoredAt) >= c.ttl {
			delete(c.items, k)
		}
	}
	if len(c.items) < c.maxItems {
		return
	}
	var (
		oldestKey string
		oldestAt  time.Time
		first     = true
	)
	for k, e := range c.items {
		if first || e.StoredAt.Before(oldestAt) {
			oldestKey, oldestAt, first = k, e.StoredAt, false
		}
	}
	delete(c.items, oldestKey)
}
