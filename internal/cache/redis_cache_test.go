package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultTTL = 10 * time.Minute

func newCache(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()

	client, redisMock := redismock.NewClientMock()
	t.Cleanup(func() {
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	return cache.NewRedisCache(client, &config.CacheConfig{Enabled: true, DefaultTTL: defaultTTL}), redisMock
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return data
}

func TestKey(t *testing.T) {
	assert.Equal(t, "new_arrivals:2:8", cache.Key(cache.NewArrivalsKeyPrefix, "2", "8"))
	assert.Equal(t, "categories", cache.Key(cache.CategoryKeyPrefix))
}

func TestRedisCacheGet(t *testing.T) {
	key := cache.Key(cache.ProductKeyPrefix, "p1")

	t.Run("Hit", func(t *testing.T) {
		c, redisMock := newCache(t)
		redisMock.ExpectGet(key).SetVal(`{"public_id":"p1","name":"Tee","price":1500}`)

		var product models.Product
		hit, err := c.Get(t.Context(), key, &product)

		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, "Tee", product.Name)
		assert.InDelta(t, 1500.0, product.Price, 0.001)
	})

	t.Run("Miss", func(t *testing.T) {
		c, redisMock := newCache(t)
		redisMock.ExpectGet(key).RedisNil()

		var product models.Product
		hit, err := c.Get(t.Context(), key, &product)

		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("Redis Down", func(t *testing.T) {
		c, redisMock := newCache(t)
		redisMock.ExpectGet(key).SetErr(errors.New("connection refused"))

		var product models.Product
		hit, err := c.Get(t.Context(), key, &product)

		assert.False(t, hit)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("Undecodable Entry Is Dropped", func(t *testing.T) {
		c, redisMock := newCache(t)
		redisMock.ExpectGet(key).SetVal(`{"price":"not a number"}`)
		redisMock.ExpectDel(key).SetVal(1)

		var product models.Product
		hit, err := c.Get(t.Context(), key, &product)

		assert.False(t, hit)
		assert.ErrorContains(t, err, "cache decode")
	})
}

func TestRedisCacheSet(t *testing.T) {
	key := cache.Key(cache.CategoryKeyPrefix, "all")
	categories := []models.Category{{ID: "1", Name: "Roupa", Slug: "roupa"}}

	t.Run("Explicit TTL", func(t *testing.T) {
		c, redisMock := newCache(t)
		redisMock.ExpectSet(key, mustJSON(t, categories), time.Minute).SetVal("OK")

		assert.NoError(t, c.Set(t.Context(), key, categories, time.Minute))
	})

	t.Run("Default TTL", func(t *testing.T) {
		c, redisMock := newCache(t)
		redisMock.ExpectSet(key, mustJSON(t, categories), defaultTTL).SetVal("OK")

		assert.NoError(t, c.Set(t.Context(), key, categories, 0))
	})

	t.Run("Unencodable Value", func(t *testing.T) {
		c, _ := newCache(t)

		err := c.Set(t.Context(), key, make(chan int), time.Minute)

		assert.ErrorContains(t, err, "cache encode")
	})

	t.Run("Redis Down", func(t *testing.T) {
		c, redisMock := newCache(t)
		redisMock.ExpectSet(key, mustJSON(t, categories), time.Minute).SetErr(errors.New("connection refused"))

		assert.ErrorContains(t, c.Set(t.Context(), key, categories, time.Minute), "connection refused")
	})
}

func TestNoopCache(t *testing.T) {
	c := cache.NewNoop()

	var product models.Product
	hit, err := c.Get(t.Context(), "any", &product)

	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Set(t.Context(), "any", product, time.Minute))
}
