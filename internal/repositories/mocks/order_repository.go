package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(ctx context.Context, payload *models.CreateOrderPayload) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

func (m *OrderRepository) ListOrders(ctx context.Context, page int) (*models.OrderHistoryResponse, error) {
	args := m.Called(ctx, page)

	var resp *models.OrderHistoryResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*models.OrderHistoryResponse)
	}

	return resp, args.Error(1)
}
