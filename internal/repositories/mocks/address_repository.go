package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type AddressRepository struct {
	mock.Mock
}

func (m *AddressRepository) ListAddresses(ctx context.Context) ([]models.Address, error) {
	args := m.Called(ctx)

	var addresses []models.Address
	if args.Get(0) != nil {
		addresses = args.Get(0).([]models.Address)
	}

	return addresses, args.Error(1)
}

func (m *AddressRepository) DeleteAddress(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
