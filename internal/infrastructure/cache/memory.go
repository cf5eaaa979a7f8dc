package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	pkgcache "catalog-search-backend/pkg/cache"
)

// MemoryStore is the in-process fallback used when Redis is unreachable.
// go-cache serializes access with its own mutex and evicts expired entries
// on read; the cleanup interval only bounds how long dead entries linger.
type MemoryStore struct {
	store *gocache.Cache
}

func NewMemoryStore(defaultExpiration, cleanupInterval time.Duration) pkgcache.Store {
	return &MemoryStore{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	v, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	payload, ok := v.([]byte)
	if !ok {
		return nil, false
	}
	return payload, true
}

func (c *MemoryStore) Set(_ context.Context, key string, payload []byte, ttl time.Duration) {
	c.store.Set(key, payload, ttl)
}

func (c *MemoryStore) Invalidate(_ context.Context, prefix string) {
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}
}
