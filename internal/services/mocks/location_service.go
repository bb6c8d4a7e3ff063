package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type LocationService struct {
	mock.Mock
}

func (m *LocationService) Reverse(ctx context.Context, lat, lon float64) (*models.Address, error) {
	args := m.Called(ctx, lat, lon)

	var address *models.Address
	if args.Get(0) != nil {
		address = args.Get(0).(*models.Address)
	}

	return address, args.Error(1)
}

func (m *LocationService) Search(ctx context.Context, query string) (*models.Location, error) {
	args := m.Called(ctx, query)

	var location *models.Location
	if args.Get(0) != nil {
		location = args.Get(0).(*models.Location)
	}

	return location, args.Error(1)
}
