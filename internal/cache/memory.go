package cache

import (
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process cache with per-entry expiry
type MemoryCache struct {
	cache *gocache.Cache
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns a copy of the cached paragraphs
func (c *MemoryCache) Get(key string) ([]string, bool) {
	if val, found := c.cache.Get(key); found {
		return slices.Clone(val.([]string)), true
	}
	return nil, false
}

// Set stores a copy of paragraphs. A zero ttl uses the default expiry.
func (c *MemoryCache) Set(key string, paragraphs []string, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, slices.Clone(paragraphs), ttl)
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}

// Len returns the number of cached entries, including expired ones not yet cleaned up
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
