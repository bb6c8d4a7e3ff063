package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type SessionService struct {
	mock.Mock
}

func (m *SessionService) Current() *models.User {
	args := m.Called()

	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}

	return user
}

func (m *SessionService) View() models.SessionView {
	args := m.Called()
	return args.Get(0).(models.SessionView)
}

func (m *SessionService) Login(ctx context.Context, credential string) (*models.User, error) {
	args := m.Called(ctx, credential)

	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}

	return user, args.Error(1)
}

func (m *SessionService) Logout(ctx context.Context) {
	m.Called(ctx)
}

func (m *SessionService) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, req)

	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}

	return user, args.Error(1)
}
