package mocks

import (
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type AlertService struct {
	mock.Mock
}

func (m *AlertService) List() []models.Alert {
	args := m.Called()
	return args.Get(0).([]models.Alert)
}

func (m *AlertService) Dismiss(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}
