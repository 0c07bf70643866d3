package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"tripcheck/pkg/platform/sentinel"
)

const redisKeyPrefix = "tripcheck:"

// RedisCache stores trip results in Redis so every instance serving the same
// catalog version shares them.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing client. The client lifecycle is managed by
// the caller.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set uses SET with expiry so a write is atomic with its TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err()
}
