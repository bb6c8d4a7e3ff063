package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	var cart *models.Cart
	if fn, ok := args.Get(0).(func(context.Context, string) *models.Cart); ok {
		cart = fn(ctx, userID)
	} else if args.Get(0) != nil {
		cart = args.Get(0).(*models.Cart)
	}

	return cart, args.Error(1)
}

func (m *CartRepository) AddItem(ctx context.Context, userID, productID string, quantity int) (string, error) {
	args := m.Called(ctx, userID, productID, quantity)
	return args.String(0), args.Error(1)
}

func (m *CartRepository) UpdateItem(ctx context.Context, userID string, lineID int64, quantity int) (string, error) {
	args := m.Called(ctx, userID, lineID, quantity)
	return args.String(0), args.Error(1)
}

func (m *CartRepository) RemoveItem(ctx context.Context, userID string, lineID int64) (string, error) {
	args := m.Called(ctx, userID, lineID)
	return args.String(0), args.Error(1)
}

func (m *CartRepository) Clear(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
