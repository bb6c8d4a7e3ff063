package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) Snapshot() models.CartSnapshot {
	args := m.Called()
	return args.Get(0).(models.CartSnapshot)
}

func (m *CartService) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *CartService) AddItem(ctx context.Context, product models.Product, quantity int) error {
	args := m.Called(ctx, product, quantity)
	return args.Error(0)
}

func (m *CartService) UpdateQuantity(ctx context.Context, lineID int64, quantity int) error {
	args := m.Called(ctx, lineID, quantity)
	return args.Error(0)
}

func (m *CartService) RemoveItem(ctx context.Context, lineID int64) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

func (m *CartService) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
