package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-memory cache with optional expiry. When maxEntries
// is positive the oldest inserted key is evicted once the bound is hit.
type MemoryCache struct {
	cache      *gocache.Cache
	maxEntries int

	mu      sync.Mutex
	order   []string
	present map[string]bool
}

// NewMemoryCache creates a memory cache. A zero defaultTTL never expires.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration, maxEntries int) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &MemoryCache{
		cache:      gocache.New(defaultTTL, cleanupInterval),
		maxEntries: maxEntries,
		present:    make(map[string]bool),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value. A zero ttl uses the cache default.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Set(key, value, ttl)
	if !c.present[key] {
		c.present[key] = true
		c.order = append(c.order, key)
	}
	for c.maxEntries > 0 && len(c.order) > c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.present, oldest)
		c.cache.Delete(oldest)
	}
	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Delete(key)
	if c.present[key] {
		delete(c.present, key)
		for i, k := range c.order {
			if k == key {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.order = nil
	c.present = make(map[string]bool)
	return nil
}

// Len returns the number of tracked keys, including expired ones not yet evicted
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
