package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type AffiliateRepository struct {
	mock.Mock
}

func (m *AffiliateRepository) Me(ctx context.Context) (*models.Affiliate, error) {
	args := m.Called(ctx)

	var affiliate *models.Affiliate
	if args.Get(0) != nil {
		affiliate = args.Get(0).(*models.Affiliate)
	}

	return affiliate, args.Error(1)
}

func (m *AffiliateRepository) Apply(ctx context.Context, application *models.AffiliateApplication) (string, error) {
	args := m.Called(ctx, application)
	return args.String(0), args.Error(1)
}

func (m *AffiliateRepository) Withdraw(ctx context.Context, req *models.WithdrawalRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
