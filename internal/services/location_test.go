package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/pkg/nominatim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Reverse(ctx context.Context, lat, lon float64) (*nominatim.Place, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nominatim.Place), args.Error(1)
}

func (m *mockGeocoder) Search(ctx context.Context, query string) (*nominatim.Place, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nominatim.Place), args.Error(1)
}

func (m *mockGeocoder) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestLocationReverse(t *testing.T) {
	t.Run("Keeps Picked Coordinates", func(t *testing.T) {
		geocoder := new(mockGeocoder)
		locations := service.NewLocationService(geocoder, nil, nil)
		geocoder.On("Reverse", mock.Anything, -8.8383, 13.2344).Return(&nominatim.Place{DisplayName: "Rua Direita, Luanda", Lat: -8.8, Lon: 13.2}, nil).Once()

		address, err := locations.Reverse(t.Context(), -8.8383, 13.2344)

		require.NoError(t, err)
		assert.Equal(t, "Rua Direita, Luanda", address.Name)
		assert.InDelta(t, -8.8383, address.Lat, 1e-9)
		assert.InDelta(t, 13.2344, address.Long, 1e-9)
	})

	t.Run("Out Of Range", func(t *testing.T) {
		geocoder := new(mockGeocoder)
		locations := service.NewLocationService(geocoder, nil, nil)

		_, err := locations.Reverse(t.Context(), 91, 0)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
		geocoder.AssertNotCalled(t, "Reverse", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Geocoder Down", func(t *testing.T) {
		geocoder := new(mockGeocoder)
		locations := service.NewLocationService(geocoder, nil, nil)
		cause := errors.New("nominatim returned status code: 503")
		geocoder.On("Reverse", mock.Anything, 1.0, 1.0).Return(nil, cause).Once()

		_, err := locations.Reverse(t.Context(), 1, 1)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeThirdPartyError))
		assert.ErrorIs(t, err, cause)
	})
}

func TestLocationSearch(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		geocoder := new(mockGeocoder)
		locations := service.NewLocationService(geocoder, nil, nil)
		geocoder.On("Search", mock.Anything, "Talatona").Return(&nominatim.Place{DisplayName: "Talatona", Lat: -8.92, Lon: 13.18}, nil).Once()

		location, err := locations.Search(t.Context(), "  Talatona ")

		require.NoError(t, err)
		assert.InDelta(t, 13.18, location.Lon, 1e-9)
	})

	t.Run("Not Found", func(t *testing.T) {
		geocoder := new(mockGeocoder)
		locations := service.NewLocationService(geocoder, nil, nil)
		geocoder.On("Search", mock.Anything, "nowhere").Return(nil, nominatim.ErrNotFound).Once()

		_, err := locations.Search(t.Context(), "nowhere")

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
	})

	t.Run("Blank Query", func(t *testing.T) {
		locations := service.NewLocationService(new(mockGeocoder), nil, nil)

		_, err := locations.Search(t.Context(), " ")

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
	})
}

type fixedLimiter struct {
	allowed    bool
	retryAfter time.Duration
	err        error
}

func (l fixedLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return l.allowed, l.retryAfter, l.err
}

func TestLocationThrottle(t *testing.T) {
	t.Run("Over Limit", func(t *testing.T) {
		geocoder := new(mockGeocoder)
		locations := service.NewLocationService(geocoder, fixedLimiter{retryAfter: 300 * time.Millisecond}, nil)

		_, err := locations.Search(t.Context(), "Talatona")

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeTooManyRequests))
		assert.EqualError(t, err, "Too many location lookups, try again in 1s")
		geocoder.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("Limiter Down Lets Calls Through", func(t *testing.T) {
		geocoder := new(mockGeocoder)
		locations := service.NewLocationService(geocoder, fixedLimiter{err: errors.New("redis down")}, nil)
		geocoder.On("Search", mock.Anything, "Talatona").Return(&nominatim.Place{DisplayName: "Talatona"}, nil).Once()

		_, err := locations.Search(t.Context(), "Talatona")

		require.NoError(t, err)
		geocoder.AssertExpectations(t)
	})
}
