package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Me(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)

	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}

	return user, args.Error(1)
}

func (m *UserRepository) LoginWithGoogle(ctx context.Context, credential string) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

func (m *UserRepository) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *UserRepository) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *UserRepository) SessionToken() string {
	args := m.Called()
	return args.String(0)
}
