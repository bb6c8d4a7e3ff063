package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// Pinger is anything that can tell whether a remote dependency answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Endpoints struct {
	Storefront Pinger
	Geocoder   Pinger
}

func NewHealthHandler(cfg *config.Config, version string, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "storefront",
			Timeout:   cfg.Upstream.Timeout,
			SkipOnErr: false,
			Check:     pingCheck("storefront", endpoints.Storefront),
		},
	}

	if cfg.Cache.Enabled {
		checks = append(checks, health.Config{
			Name:    "redis",
			Timeout: 2 * time.Second,
			// the catalog falls back to the network without the cache
			SkipOnErr: true,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	}

	if endpoints.Geocoder != nil {
		checks = append(checks, health.Config{
			Name:      "geocoder",
			Timeout:   cfg.Geocoder.Timeout,
			SkipOnErr: true,
			Check:     pingCheck("geocoder", endpoints.Geocoder),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront-companion",
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func pingCheck(name string, pinger Pinger) health.CheckFunc {
	return func(ctx context.Context) error {
		if pinger == nil {
			return fmt.Errorf("%s client is not initialized", name)
		}
		return pinger.Ping(ctx)
	}
}
