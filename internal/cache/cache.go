// Package cache provides the memoizing cache service used for computed
// aggregates (per-match charting summaries, tour and tournament averages).
// Keys are explicit (identifier plus date range) and the clock is injected
// so tests can construct independent instances. Under concurrent access at
// most one computation runs per key; recomputation after a miss is
// idempotent, so a raced duplicate is only wasteful, never wrong.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key identifies one memoized computation: an identifier (player,
// tournament, match) and an optional date range boundary.
type Key struct {
	ID   string
	From time.Time
	To   time.Time
}

// String renders the key for singleflight grouping.
func (k Key) String() string {
	return fmt.Sprintf("%s|%d|%d", k.ID, k.From.UnixNano(), k.To.UnixNano())
}

// ComputeFunc produces the value for a key on a cache miss.
type ComputeFunc[V any] func(ctx context.Context) (V, error)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache memoizes computed values by Key. The zero TTL means entries never
// expire.
type Cache[V any] struct {
	clock func() time.Time
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[Key]entry[V]
	group   singleflight.Group
}

// New creates a cache with the given clock and entry lifetime. A nil clock
// falls back to time.Now.
func New[V any](clock func() time.Time, ttl time.Duration) *Cache[V] {
	if clock == nil {
		clock = time.Now
	}
	return &Cache[V]{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[Key]entry[V]),
	}
}

// Get returns the memoized value for key, computing it at most once per key
// across concurrent callers. Failed computations are not cached.
func (c *Cache[V]) Get(ctx context.Context, key Key, compute ComputeFunc[V]) (V, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key.String(), func() (any, error) {
		// A concurrent caller may have stored the value between the miss
		// and the singleflight slot being granted.
		if value, ok := c.lookup(key); ok {
			return value, nil
		}

		value, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry[V]{value: value, storedAt: c.clock()}
		c.mu.Unlock()

		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Invalidate drops the entry for key, if present.
func (c *Cache[V]) Invalidate(key Key) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of live entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[V]) lookup(key Key) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.ttl > 0 && c.clock().Sub(e.storedAt) > c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}
