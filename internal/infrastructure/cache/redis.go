package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	pkgcache "catalog-search-backend/pkg/cache"
	"catalog-search-backend/pkg/logger"
)

// RedisStore is the networked cache backend. Redis owns per-key atomicity
// and TTL expiry; read errors are collapsed into misses so a flaky cache
// never fails a search.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and performs a single liveness check. A ping
// failure is returned to the caller so construction can fall back to the
// in-process store; there is no retry or reconnect afterwards.
func NewRedisStore(ctx context.Context, addr, password string, db int) (pkgcache.Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func (c *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("cache read failed, treating as miss")
		return nil, false
	}
	if len(payload) == 0 {
		return nil, false
	}
	return payload, true
}

func (c *RedisStore) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Invalidate scans for prefix* and deletes the matches. The scan is naive
// by design: keys are opaque fingerprints, not user input.
func (c *RedisStore) Invalidate(ctx context.Context, prefix string) {
	keys, err := c.client.Keys(ctx, prefix+"*").Result()
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation delete failed")
	}
}
