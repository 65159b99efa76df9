// Package support holds small generic infrastructure (cache, clock, set)
// shared by the domain packages, each backed by a real third-party
// library instead of a hand-rolled reimplementation.
package support

import (
	lru "github.com/hashicorp/golang-lru"
)

// Cacher is a generic cache interface. Kept as its own small interface
// (rather than importing golang-lru's concrete type everywhere) so
// callers can swap in an EmptyCache in tests without touching call
// sites.
type Cacher[K comparable, V any] interface {
	Put(key K, value V)
	Get(key K) (V, bool)
	Evict(key K)
	Flush()
	Len() int
}

// lruCache adapts hashicorp/golang-lru's non-generic Cache to the
// generic Cacher interface.
type lruCache[K comparable, V any] struct {
	inner *lru.Cache
}

// NewLRUCache returns a Cacher backed by hashicorp/golang-lru, bounded
// to capacity entries.
func NewLRUCache[K comparable, V any](capacity int) Cacher[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	inner, err := lru.New(capacity)
	if err != nil {
		// lru.New only errors on capacity<=0, which is guarded above.
		panic(err)
	}
	return &lruCache[K, V]{inner: inner}
}

func (c *lruCache[K, V]) Put(key K, value V) {
	c.inner.Add(key, value)
}

func (c *lruCache[K, V]) Get(key K) (V, bool) {
	v, ok := c.inner.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (c *lruCache[K, V]) Evict(key K) {
	c.inner.Remove(key)
}

func (c *lruCache[K, V]) Flush() {
	c.inner.Purge()
}

func (c *lruCache[K, V]) Len() int {
	return c.inner.Len()
}

// EmptyCache is a Cacher that never stores anything, useful for
// disabling memoization (e.g. in tests) without changing call sites.
type EmptyCache[K comparable, V any] struct{}

func (EmptyCache[K, V]) Put(K, V)    {}
func (EmptyCache[K, V]) Get(K) (V, bool) {
	var zero V
	return zero, false
}
func (EmptyCache[K, V]) Evict(K) {}
func (EmptyCache[K, V]) Flush()  {}
func (EmptyCache[K, V]) Len() int { return 0 }
