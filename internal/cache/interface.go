package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a read-through store for catalog responses. Cart state is never
// cached: the cart mirror lives in process memory only.
type Cache interface {
	// Get decodes the entry at key into value. A miss is (false, nil).
	Get(ctx context.Context, key string, value any) (bool, error)
	// Set stores value under key; ttl <= 0 means the configured default.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

const (
	ProductKeyPrefix     = "product"
	ProductListKeyPrefix = "products"
	NewArrivalsKeyPrefix = "new_arrivals"
	CategoryKeyPrefix    = "categories"
)

// Key joins prefix and parts with ':', e.g. Key("new_arrivals", "1", "8").
func Key(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// NewNoop returns a Cache that always misses, for when redis is disabled.
func NewNoop() Cache {
	return noopCache{}
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, any) (bool, error) { return false, nil }

func (noopCache) Set(context.Context, string, any, time.Duration) error { return nil }
