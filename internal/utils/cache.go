package utils

import (
	"sync"
	"sync/atomic"
)

// Cache is a concurrency-safe memo table
type Cache[K comparable, V any] struct {
	items  map[K]V
	mutex  sync.RWMutex
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates a new generic cache
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

// Get retrieves an item from the cache
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	value, exists := c.items[key]
	return value, exists
}

// Set stores an item in the cache
func (c *Cache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = value
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. Failed computations are not cached. Two goroutines missing on
// the same key may both compute; the values are expected to be identical.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		c.hits.Add(1)
		return value, nil
	}
	c.misses.Add(1)

	value, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, value)
	return value, nil
}

// Size returns the number of items in the cache
func (c *Cache[K, V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}

// GetStats returns cache statistics
func (c *Cache[K, V]) GetStats() CacheStats {
	return CacheStats{
		Size:   c.Size(),
		Hits:   int(c.hits.Load()),
		Misses: int(c.misses.Load()),
	}
}

// CacheStats provides cache statistics
type CacheStats struct {
	Size   int
	Hits   int
	Misses int
}
