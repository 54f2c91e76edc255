// Package cache provides an LRU record cache consulted before the primary
// store. The cache is an injected dependency with an explicit lifetime, not
// ambient global state.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultEntries is the fallback capacity when a non-positive size is
// requested.
const DefaultEntries = 10000

// Records is an LRU cache of hydrated records keyed by id.
type Records[K comparable, V any] struct {
	lru *lru.Cache[K, V]
}

// NewRecords creates a record cache holding up to size entries.
func NewRecords[K comparable, V any](size int) *Records[K, V] {
	if size <= 0 {
		size = DefaultEntries
	}
	c, _ := lru.New[K, V](size)
	return &Records[K, V]{lru: c}
}

// Get returns the cached record for key, if present.
func (c *Records[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

// Add stores a record under key.
func (c *Records[K, V]) Add(key K, value V) {
	c.lru.Add(key, value)
}

// Len returns the number of cached records.
func (c *Records[K, V]) Len() int {
	return c.lru.Len()
}

// Purge drops all cached records.
func (c *Records[K, V]) Purge() {
	c.lru.Purge()
}
