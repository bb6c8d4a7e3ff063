package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedisCache stores JSON-encoded values in redis. The client is shared
// with the rate limiter and closed by main.
func NewRedisCache(client *redis.Client, cfg *config.CacheConfig) Cache {
	return &redisCache{client: client, defaultTTL: cfg.DefaultTTL}
}

func (c *redisCache) Get(ctx context.Context, key string, value any) (bool, error) {

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		// A payload written by an older model shape; drop it so the next
		// read repopulates.
		if delErr := c.client.Del(ctx, key).Err(); delErr != nil {
			err = errors.Join(err, delErr)
		}
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}

	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}
