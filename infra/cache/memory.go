package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryCache implements RateStore in process memory.
type MemoryCache struct {
	cache map[string]cacheEntry
	mu    sync.RWMutex
	now   func() time.Time
}

type cacheEntry struct {
	rate      decimal.Decimal
	expiresAt time.Time
}

var _ RateStore = (*MemoryCache)(nil)

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: make(map[string]cacheEntry),
		now:   time.Now,
	}
}

// Get retrieves a rate from cache
func (c *MemoryCache) Get(_ context.Context, key string) (decimal.Decimal, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache[key]
	if !exists || !c.now().Before(entry.expiresAt) {
		return decimal.Zero, false, nil
	}
	return entry.rate, true, nil
}

// Set stores a rate in cache with TTL
func (c *MemoryCache) Set(_ context.Context, key string, rate decimal.Decimal, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = cacheEntry{rate: rate, expiresAt: c.now().Add(ttl)}
	return nil
}

// Delete removes a rate from cache
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.cache, key)
	return nil
}

// Prune drops expired entries and reports how many were removed.
func (c *MemoryCache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.cache {
		if !now.Before(entry.expiresAt) {
			delete(c.cache, key)
			removed++
		}
	}
	return removed
}

// StartPruning calls Prune every interval until ctx is done.
func (c *MemoryCache) StartPruning(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Prune()
			}
		}
	}()
}
