// Package cache holds an in-memory TTL snapshot of the product catalog so
// parse calls do not touch storage on every utterance.
package cache

import (
	"sync"
	"time"

	"github.com/tiendafacil/backend/internal/domain"
)

const defaultTTL = 30 * time.Second

// CatalogCache is a thread-safe snapshot of the catalog with expiration.
// Writers to the catalog call Invalidate; readers fall back to storage when
// the snapshot is stale.
type CatalogCache struct {
	mu        sync.RWMutex
	products  []domain.Product
	expiresAt time.Time
	ttl       time.Duration
}

// NewCatalogCache creates a catalog snapshot cache with the given TTL.
func NewCatalogCache(ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &CatalogCache{ttl: ttl}
}

// Get returns the cached snapshot and whether it is still fresh. The
// returned slice is a copy; callers must treat the products as read-only.
func (c *CatalogCache) Get() ([]domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.products == nil || time.Now().After(c.expiresAt) {
		return nil, false
	}

	snapshot := make([]domain.Product, len(c.products))
	copy(snapshot, c.products)
	return snapshot, true
}

// Set replaces the snapshot and restarts the TTL.
func (c *CatalogCache) Set(products []domain.Product) {
	snapshot := make([]domain.Product, len(products))
	copy(snapshot, products)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = snapshot
	c.expiresAt = time.Now().Add(c.ttl)
}

// Invalidate drops the snapshot; the next Get misses.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
}

// Size returns the number of cached products (for debugging/monitoring).
func (c *CatalogCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}
