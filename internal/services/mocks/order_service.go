package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func (m *OrderService) Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResult, error) {
	args := m.Called(ctx, req)

	var result *models.CheckoutResult
	if args.Get(0) != nil {
		result = args.Get(0).(*models.CheckoutResult)
	}

	return result, args.Error(1)
}

func (m *OrderService) ListOrders(ctx context.Context, page int) (*models.OrderHistoryResponse, error) {
	args := m.Called(ctx, page)

	var resp *models.OrderHistoryResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*models.OrderHistoryResponse)
	}

	return resp, args.Error(1)
}

func (m *OrderService) CheckoutContext(ctx context.Context) (*models.CheckoutContext, error) {
	args := m.Called(ctx)

	var checkout *models.CheckoutContext
	if args.Get(0) != nil {
		checkout = args.Get(0).(*models.CheckoutContext)
	}

	return checkout, args.Error(1)
}
