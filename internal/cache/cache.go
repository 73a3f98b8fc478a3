package cache

import (
	"sync"

	"equitybridge/server/internal/models"
)

// BenchmarkCache memoizes the "current" benchmark price per
// region/category. The latest report month is stable for the lifetime of a
// process, so a warm entry stays valid until the cache is cleared.
type BenchmarkCache interface {
	Get(region, category string) (*models.BenchmarkObservation, bool)
	Set(region, category string, obs *models.BenchmarkObservation)
	Clear()
}

// MemoryCache is the in-process implementation. Safe for concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*models.BenchmarkObservation
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*models.BenchmarkObservation),
	}
}

func cacheKey(region, category string) string {
	return region + ":" + category
}

func (c *MemoryCache) Get(region, category string) (*models.BenchmarkObservation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	obs, ok := c.entries[cacheKey(region, category)]
	return obs, ok
}

func (c *MemoryCache) Set(region, category string, obs *models.BenchmarkObservation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(region, category)] = obs
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*models.BenchmarkObservation)
}

// Len reports the number of warm entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
