package service_test

import (
	"context"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupSessionService(t *testing.T) (*service.SessionService, *mocks.UserRepository, *recordingNotifier) {
	t.Helper()

	repo := new(mocks.UserRepository)
	notifier := &recordingNotifier{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	return service.NewSessionService(repo, notifier, nil), repo, notifier
}

func TestSessionLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		sessions, repo, _ := setupSessionService(t)
		repo.On("LoginWithGoogle", mock.Anything, "google-cred").Return(nil).Once()
		repo.On("Me", mock.Anything).Return(&models.User{PublicID: "u1", Name: "Ana"}, nil).Once()

		var seen []*models.User
		sessions.Subscribe(func(_ context.Context, user *models.User) { seen = append(seen, user) })

		user, err := sessions.Login(t.Context(), "google-cred")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.PublicID)
		assert.True(t, sessions.View().Authenticated)
		require.Len(t, seen, 1)
		assert.Equal(t, "u1", seen[0].PublicID)
	})

	t.Run("Rejected Credential", func(t *testing.T) {
		sessions, repo, notifier := setupSessionService(t)
		repo.On("LoginWithGoogle", mock.Anything, "bad").Return(appErrors.UnauthorizedError("Token inválido")).Once()

		user, err := sessions.Login(t.Context(), "bad")

		assert.Nil(t, user)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnauthorized))
		assert.Equal(t, []string{"Token inválido"}, notifier.errors())
		repo.AssertNotCalled(t, "Me", mock.Anything)
	})

	t.Run("Backend Did Not Keep The Session", func(t *testing.T) {
		sessions, repo, _ := setupSessionService(t)
		repo.On("LoginWithGoogle", mock.Anything, "cred").Return(nil).Once()
		repo.On("Me", mock.Anything).Return(nil, nil).Once()

		_, err := sessions.Login(t.Context(), "cred")

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnauthorized))
		assert.Nil(t, sessions.Current())
	})
}

func TestSessionRefresh(t *testing.T) {
	t.Run("Failure Logs Out", func(t *testing.T) {
		sessions, repo, _ := setupSessionService(t)
		repo.On("Me", mock.Anything).Return(&models.User{PublicID: "u1"}, nil).Once()
		require.NoError(t, sessions.Refresh(t.Context()))

		var notified int
		var last *models.User
		sessions.Subscribe(func(_ context.Context, user *models.User) {
			notified++
			last = user
		})

		repo.On("Me", mock.Anything).Return(nil, appErrors.TransportError("down")).Once()

		err := sessions.Refresh(t.Context())

		assert.Error(t, err)
		assert.Nil(t, sessions.Current())
		assert.Equal(t, 1, notified)
		assert.Nil(t, last)
	})

	t.Run("Same Identity Does Not Notify", func(t *testing.T) {
		sessions, repo, _ := setupSessionService(t)
		repo.On("Me", mock.Anything).Return(&models.User{PublicID: "u1", Name: "Ana"}, nil).Once()
		repo.On("Me", mock.Anything).Return(&models.User{PublicID: "u1", Name: "Ana Maria"}, nil).Once()

		var notified int
		sessions.Subscribe(func(context.Context, *models.User) { notified++ })

		require.NoError(t, sessions.Refresh(t.Context()))
		require.NoError(t, sessions.Refresh(t.Context()))

		assert.Equal(t, 1, notified)
		assert.Equal(t, "Ana Maria", sessions.Current().Name)
	})
}

func TestSessionLogout(t *testing.T) {
	sessions, repo, _ := setupSessionService(t)
	repo.On("Me", mock.Anything).Return(&models.User{PublicID: "u1"}, nil).Once()
	require.NoError(t, sessions.Refresh(t.Context()))

	repo.On("Logout", mock.Anything).Return(appErrors.TransportError("down")).Once()

	var loggedOut bool
	sessions.Subscribe(func(_ context.Context, user *models.User) { loggedOut = user == nil })

	sessions.Logout(t.Context())

	assert.Nil(t, sessions.Current())
	assert.True(t, loggedOut)
	assert.False(t, sessions.View().Authenticated)
}

func TestSessionUpdateProfile(t *testing.T) {
	req := &models.UpdateProfileRequest{Name: "Ana Maria", Phone: "923000000"}

	t.Run("Requires Session", func(t *testing.T) {
		sessions, repo, _ := setupSessionService(t)

		_, err := sessions.UpdateProfile(t.Context(), req)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnauthorized))
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("Success Refreshes User", func(t *testing.T) {
		sessions, repo, notifier := setupSessionService(t)
		repo.On("Me", mock.Anything).Return(&models.User{PublicID: "u1", Name: "Ana"}, nil).Once()
		require.NoError(t, sessions.Refresh(t.Context()))

		repo.On("UpdateProfile", mock.Anything, req).Return("", nil).Once()
		repo.On("Me", mock.Anything).Return(&models.User{PublicID: "u1", Name: "Ana Maria", Phone: "923000000"}, nil).Once()

		user, err := sessions.UpdateProfile(t.Context(), req)

		require.NoError(t, err)
		assert.Equal(t, "923000000", user.Phone)
		assert.Equal(t, []string{"Profile updated"}, notifier.oks())
	})

	t.Run("Rejected", func(t *testing.T) {
		sessions, repo, notifier := setupSessionService(t)
		repo.On("Me", mock.Anything).Return(&models.User{PublicID: "u1"}, nil).Once()
		require.NoError(t, sessions.Refresh(t.Context()))

		repo.On("UpdateProfile", mock.Anything, req).Return("", appErrors.ValidationError("Telefone inválido")).Once()

		_, err := sessions.UpdateProfile(t.Context(), req)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
		assert.Equal(t, []string{"Telefone inválido"}, notifier.errors())
	})
}
