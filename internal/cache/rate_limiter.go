package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const RateLimitKeyPrefix = "rate"

type RateLimiter interface {
	// Allow records an attempt under key and reports whether it fits in the
	// window, and if not how long until the oldest allowed attempt leaves it.
	// Refused attempts are not kept.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

type redisRateLimiter struct {
	client *redis.Client
	cfg    config.RateConfig
	now    func() time.Time
	member func() string
}

func NewRedisRateLimiter(client *redis.Client, cfg config.RateConfig) RateLimiter {
	return &redisRateLimiter{client: client, cfg: cfg, now: time.Now, member: uuid.NewString}
}

// Allow keeps a sorted set of attempt timestamps (milliseconds) per key and
// counts the ones inside the sliding window.
func (r *redisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {

	key = Key(RateLimitKeyPrefix, key)
	now := r.now().UnixMilli()
	windowStart := now - r.cfg.WindowSize.Milliseconds()
	member := r.member()

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: member})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to record attempt for %s: %w", key, err)
	}

	if count.Val() <= r.cfg.MaxAttempts {
		return true, 0, nil
	}

	// A refused attempt does not count against the window.
	pipe = r.client.Pipeline()
	pipe.ZRem(ctx, key, member)
	oldestCmd := pipe.ZRangeWithScores(ctx, key, 0, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to withdraw refused attempt for %s: %w", key, err)
	}

	oldest := oldestCmd.Val()
	if len(oldest) == 0 {
		return false, r.cfg.WindowSize, nil
	}

	retryAfter := time.Duration(int64(oldest[0].Score)+r.cfg.WindowSize.Milliseconds()-now) * time.Millisecond

	return false, max(retryAfter, 0), nil
}

type noopLimiter struct{}

// NewNoopLimiter allows everything, used when redis is disabled.
func NewNoopLimiter() RateLimiter {
	return noopLimiter{}
}

func (noopLimiter) Allow(context.Context, string) (bool, time.Duration, error) { return true, 0, nil }
