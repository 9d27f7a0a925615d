package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"todo-service/internal/config"
	"todo-service/pkg/logger"
)

const todosCacheKey = "todos:all"

var (
	client *redis.Client
	once   sync.Once
)

// Client returns the global Redis client, or nil when REDIS_URL is unset.
// With no client every read goes straight to the store; the cache is an
// optional layer, never a correctness dependency.
func Client(ctx context.Context) *redis.Client {
	once.Do(func() {
		cfg := config.Get()
		if cfg.RedisURL == "" {
			return
		}
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error(ctx, "Invalid REDIS_URL", "error", err, "url", cfg.RedisURL)
			return
		}
		opts.PoolSize = cfg.RedisPoolSize
		c := redis.NewClient(opts)
		if err := c.Ping(ctx).Err(); err != nil {
			logger.Warn(ctx, "Redis ping failed, cache disabled", "error", err)
			_ = c.Close()
			return
		}
		client = c
		logger.Info(ctx, "Redis client initialized", "pool_size", cfg.RedisPoolSize)
	})
	return client
}

// GetRawTodos reads the pre-encoded todos list. Returns (nil, false) on miss,
// error, or when the cache is disabled.
func GetRawTodos(ctx context.Context) ([]byte, bool) {
	c := Client(ctx)
	if c == nil {
		return nil, false
	}
	b, err := c.Get(ctx, todosCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Debug(ctx, "Redis get todos failed", "error", err)
		return nil, false
	}
	return b, true
}

// SetRawTodos stores the pre-encoded todos list with the configured TTL.
func SetRawTodos(ctx context.Context, b []byte) {
	c := Client(ctx)
	if c == nil {
		return
	}
	ttl := time.Duration(config.Get().CacheTTL) * time.Second
	if err := c.Set(ctx, todosCacheKey, b, ttl).Err(); err != nil {
		logger.Debug(ctx, "Redis set todos failed", "error", err)
	}
}

// InvalidateTodos deletes the todos cache key so the next read goes to the store.
func InvalidateTodos(ctx context.Context) {
	c := Client(ctx)
	if c == nil {
		return
	}
	if err := c.Del(ctx, todosCacheKey).Err(); err != nil {
		logger.Debug(ctx, "Redis invalidate todos failed", "error", err)
	}
}
