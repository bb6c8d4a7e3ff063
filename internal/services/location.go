package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/pkg/nominatim"
)

// LocationService turns map positions and searches into delivery address
// candidates.
type LocationService struct {
	geocoder nominatim.Client
	limiter  cache.RateLimiter
	logger   *slog.Logger
}

const geocoderRateKey = "geocoder"

func NewLocationService(geocoder nominatim.Client, limiter cache.RateLimiter, logger *slog.Logger) *LocationService {
	if logger == nil {
		logger = slog.Default()
	}
	if limiter == nil {
		limiter = cache.NewNoopLimiter()
	}

	return &LocationService{geocoder: geocoder, limiter: limiter, logger: logger.With(slog.String("component", "locations"))}
}

// Reverse names the place at a coordinate. The coordinate the user picked is
// kept, not the one the geocoder snapped to.
func (s *LocationService) Reverse(ctx context.Context, lat, lon float64) (*models.Address, error) {

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, appErrors.ValidationError("Coordinates are out of range")
	}

	if err := s.throttle(ctx); err != nil {
		return nil, err
	}

	place, err := s.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		return nil, s.mapError(err, "Could not find an address for this location")
	}

	return &models.Address{Name: place.DisplayName, Lat: lat, Long: lon}, nil
}

func (s *LocationService) Search(ctx context.Context, query string) (*models.Location, error) {

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, appErrors.ValidationError("Type a place to search for")
	}

	if err := s.throttle(ctx); err != nil {
		return nil, err
	}

	place, err := s.geocoder.Search(ctx, query)
	if err != nil {
		return nil, s.mapError(err, "Place not found")
	}

	return &models.Location{DisplayName: place.DisplayName, Lat: place.Lat, Lon: place.Lon}, nil
}

// throttle keeps the geocoder under its usage policy. A limiter failure lets
// the call through.
func (s *LocationService) throttle(ctx context.Context) error {

	allowed, retryAfter, err := s.limiter.Allow(ctx, geocoderRateKey)
	if err != nil {
		s.logger.Warn("Rate limiter unavailable", slog.Any("error", err))
		return nil
	}

	if !allowed {
		metrics.GeocoderThrottled()
		seconds := int(math.Ceil(retryAfter.Seconds()))
		return appErrors.TooManyRequestsError(fmt.Sprintf("Too many location lookups, try again in %ds", max(seconds, 1)))
	}

	return nil
}

func (s *LocationService) mapError(err error, notFound string) error {
	if errors.Is(err, nominatim.ErrNotFound) {
		return appErrors.ValidationError(notFound)
	}

	s.logger.Warn("Geocoding failed", slog.Any("error", err))

	return appErrors.ThirdPartyError("Location service is unavailable").WithError(err)
}
