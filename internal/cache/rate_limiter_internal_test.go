package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var limiterNow = time.UnixMilli(1_700_000_000_000)

func setupLimiter(t *testing.T) (*redisRateLimiter, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	limiter := &redisRateLimiter{
		client: client,
		cfg:    config.RateConfig{MaxAttempts: 1, WindowSize: time.Second},
		now:    func() time.Time { return limiterNow },
		member: func() string { return "attempt" },
	}
	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })

	return limiter, mock
}

func expectAttempt(mock redismock.ClientMock, count int64) {
	key := "rate:geocoder"
	mock.ExpectZRemRangeByScore(key, "0", "1699999999000").SetVal(0)
	mock.ExpectZAdd(key, redis.Z{Score: float64(limiterNow.UnixMilli()), Member: "attempt"}).SetVal(1)
	mock.ExpectZCard(key).SetVal(count)
	mock.ExpectExpire(key, time.Second).SetVal(true)
}

func TestRateLimiterAllow(t *testing.T) {
	t.Run("Within Window", func(t *testing.T) {
		limiter, mock := setupLimiter(t)
		expectAttempt(mock, 1)

		allowed, retryAfter, err := limiter.Allow(t.Context(), "geocoder")

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, retryAfter)
	})

	t.Run("Over Limit", func(t *testing.T) {
		limiter, mock := setupLimiter(t)
		expectAttempt(mock, 2)
		mock.ExpectZRem("rate:geocoder", "attempt").SetVal(1)
		mock.ExpectZRangeWithScores("rate:geocoder", 0, 0).SetVal([]redis.Z{
			{Score: float64(limiterNow.UnixMilli() - 400), Member: "earlier"},
		})

		allowed, retryAfter, err := limiter.Allow(t.Context(), "geocoder")

		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 600*time.Millisecond, retryAfter)
	})

	t.Run("Refused Attempt Leaves Window Unchanged", func(t *testing.T) {
		limiter, mock := setupLimiter(t)

		// First call is refused and withdrawn; once the earlier attempt
		// has aged out the next call sees only itself.
		expectAttempt(mock, 2)
		mock.ExpectZRem("rate:geocoder", "attempt").SetVal(1)
		mock.ExpectZRangeWithScores("rate:geocoder", 0, 0).SetVal([]redis.Z{
			{Score: float64(limiterNow.UnixMilli() - 900), Member: "earlier"},
		})
		expectAttempt(mock, 1)

		allowed, retryAfter, err := limiter.Allow(t.Context(), "geocoder")
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 100*time.Millisecond, retryAfter)

		allowed, _, err = limiter.Allow(t.Context(), "geocoder")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("Withdraw Fails", func(t *testing.T) {
		limiter, mock := setupLimiter(t)
		expectAttempt(mock, 2)
		mock.ExpectZRem("rate:geocoder", "attempt").SetErr(errors.New("connection reset"))

		allowed, _, err := limiter.Allow(t.Context(), "geocoder")

		assert.False(t, allowed)
		assert.ErrorContains(t, err, "withdraw refused attempt")
	})

	t.Run("Redis Down", func(t *testing.T) {
		limiter, mock := setupLimiter(t)
		mock.ExpectZRemRangeByScore("rate:geocoder", "0", "1699999999000").SetErr(errors.New("connection refused"))

		_, _, err := limiter.Allow(t.Context(), "geocoder")

		assert.Error(t, err)
	})
}

func TestNoopLimiter(t *testing.T) {
	allowed, _, err := NewNoopLimiter().Allow(t.Context(), "anything")
	require.NoError(t, err)
	assert.True(t, allowed)
}
