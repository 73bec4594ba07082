package typelib

import "sync"

// cache is a mutex-guarded memoizing map. A Factory composes two independent
// instances (array types, simple classes); there is no global cache state.
type cache[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]V
}

func newCache[K comparable, V any]() *cache[K, V] {
	return &cache[K, V]{m: make(map[K]V)}
}

// getOrCreate returns the cached value for key, or invokes create and
// caches the result when create's second return is true. create runs with
// the cache lock held.
func (c *cache[K, V]) getOrCreate(key K, create func() (V, bool)) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.m[key]; ok {
		return v
	}
	v, store := create()
	if store {
		c.m[key] = v
	}
	return v
}

// len returns the number of cached entries.
func (c *cache[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
