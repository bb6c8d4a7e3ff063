package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) ListProducts(ctx context.Context, categoryID string) ([]models.Product, error) {
	args := m.Called(ctx, categoryID)

	var products []models.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]models.Product)
	}

	return products, args.Error(1)
}

func (m *ProductRepository) GetProduct(ctx context.Context, publicID string) (*models.Product, error) {
	args := m.Called(ctx, publicID)

	var product *models.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*models.Product)
	}

	return product, args.Error(1)
}

func (m *ProductRepository) NewArrivals(ctx context.Context, page, perPage int) (*models.ProductListResponse, error) {
	args := m.Called(ctx, page, perPage)

	var resp *models.ProductListResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*models.ProductListResponse)
	}

	return resp, args.Error(1)
}

func (m *ProductRepository) Categories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)

	var categories []models.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]models.Category)
	}

	return categories, args.Error(1)
}
