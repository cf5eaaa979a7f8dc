package cache

import (
	"context"
	"time"

	pkgcache "catalog-search-backend/pkg/cache"
	"catalog-search-backend/pkg/logger"
)

// New picks the cache backend for the lifetime of this instance: Redis when
// one liveness check succeeds, the in-process store otherwise. The fallback
// decision is permanent; a cache outage after construction only surfaces as
// per-operation misses.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) pkgcache.Store {
	store, err := NewRedisStore(ctx, addr, password, db)
	if err != nil {
		logger.Warn().Err(err).Str("addr", addr).Msg("Redis unreachable, using in-process cache")
		return NewMemoryStore(ttl, 2*ttl)
	}
	logger.Info().Str("addr", addr).Msg("Connected to Redis cache")
	return store
}
