// Package cache provides a small JSON key/value cache with a Redis driver
// and an in-process memory driver.
//
//	store := cache.Connect(ctx)
//	var p models.Product
//	if hit := store.Get(ctx, "product:slug:mug", &p); !hit { ... }
package cache

import (
	"context"
	"time"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// Store is the cache contract used by services. Misses and decode failures
// both report false; a broken cache never fails a request.
type Store interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Connect returns the store selected by CACHE_DRIVER. When Redis is selected
// but unreachable it logs a warning and falls back to memory.
func Connect(ctx context.Context) Store {
	if config.CacheDriver() == "memory" {
		return NewMemory()
	}

	rs, err := NewRedis(ctx, config.RedisAddr(), config.RedisPassword())
	if err != nil {
		logger.Warn("cache: redis unavailable, using memory store", "addr", config.RedisAddr(), "error", err)
		return NewMemory()
	}
	return rs
}
