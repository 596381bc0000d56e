package cache

import (
	"context"
	"sync"
	"time"

	"github.com/saleslens/backend/internal/domain"
)

// cacheItem is a stored insight with its expiration
type cacheItem struct {
	insight    domain.DealInsight
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory insight cache with TTL support
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory insight cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	// Remove expired entries every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// Get retrieves an insight from the cache. The returned value is a copy, so
// callers may annotate it without touching the stored entry.
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.DealInsight, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if time.Now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}

	insight := item.insight
	return &insight, nil
}

// Set stores an insight in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, insight *domain.DealInsight, ttl time.Duration) error {
	if insight == nil {
		return domain.ErrInvalidRequest
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	stored := *insight
	stored.CachedAt = time.Now()

	c.data[key] = cacheItem{
		insight:    stored,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes an insight from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Size returns the current number of items in the cache
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}
