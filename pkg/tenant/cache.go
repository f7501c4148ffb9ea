package tenant

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheSize caps the in-memory tenant cache.
const DefaultCacheSize = 1000

// cachedStore decorates a Store with an in-memory TTL cache so the
// validator's per-request lookup rarely touches the database. Negative
// results are not cached; unknown tenants are expected to be rare and
// caching them would delay onboarding of new ones.
type cachedStore struct {
	next Store
	ttl  time.Duration
	max  int

	mu    sync.Mutex
	items map[string]cacheEntry
	order []string // oldest first, for eviction
}

type cacheEntry struct {
	tenant    Tenant
	expiresAt time.Time
}

// NewCachedStore wraps a store with an in-memory cache. Size values below
// one fall back to DefaultCacheSize.
func NewCachedStore(next Store, ttl time.Duration, size int) Store {
	if size < 1 {
		size = DefaultCacheSize
	}
	return &cachedStore{
		next:  next,
		ttl:   ttl,
		max:   size,
		items: make(map[string]cacheEntry),
	}
}

func (c *cachedStore) GetByID(ctx context.Context, id string) (*Tenant, error) {
	c.mu.Lock()
	if entry, ok := c.items[id]; ok {
		if time.Now().Before(entry.expiresAt) {
			t := entry.tenant
			c.mu.Unlock()
			return &t, nil
		}
		c.evict(id)
	}
	c.mu.Unlock()

	t, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if _, exists := c.items[id]; !exists && len(c.items) >= c.max {
		c.evict(c.order[0])
	}
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = cacheEntry{tenant: *t, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return t, nil
}

// evict must be called with the mutex held.
func (c *cachedStore) evict(id string) {
	delete(c.items, id)
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Invalidate drops a cached tenant, e.g. after deactivation.
func Invalidate(store Store, id string) {
	if c, ok := store.(*cachedStore); ok {
		c.mu.Lock()
		c.evict(id)
		c.mu.Unlock()
	}
}
