package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupSessionTest(t *testing.T) (*mocks.SessionService, *handlers.SessionHandler) {
	mockSessionService := new(mocks.SessionService)
	t.Cleanup(func() { mockSessionService.AssertExpectations(t) })
	return mockSessionService, handlers.NewSessionHandler(mockSessionService)
}

func TestGetSession(t *testing.T) {
	mockSessionService, sessionHandler := setupSessionTest(t)
	mockSessionService.On("View").Return(models.SessionView{Authenticated: true, User: testUser}).Once()

	recorder := httptest.NewRecorder()
	sessionHandler.GetSession()(recorder, testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/session", nil, nil))

	var view models.SessionView
	testutils.DecodeResponse(t, recorder, &view)
	assert.True(t, view.Authenticated)
	assert.Equal(t, "user-1", view.User.PublicID)
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSessionService, sessionHandler := setupSessionTest(t)
		mockSessionService.On("Login", mock.Anything, "google-jwt").Return(testUser, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/session/login", strings.NewReader(`{"credential":"google-jwt"}`), nil)
		recorder := httptest.NewRecorder()
		sessionHandler.Login()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var view models.SessionView
		testutils.DecodeResponse(t, recorder, &view)
		assert.True(t, view.Authenticated)
	})

	t.Run("Failure - Missing Credential", func(t *testing.T) {
		_, sessionHandler := setupSessionTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/session/login", strings.NewReader(`{}`), nil)
		recorder := httptest.NewRecorder()
		sessionHandler.Login()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Failure - Rejected", func(t *testing.T) {
		mockSessionService, sessionHandler := setupSessionTest(t)
		mockSessionService.On("Login", mock.Anything, "bad").Return(nil, appErrors.UnauthorizedError("Login failed")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/session/login", strings.NewReader(`{"credential":"bad"}`), nil)
		recorder := httptest.NewRecorder()
		sessionHandler.Login()(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestLogout(t *testing.T) {
	mockSessionService, sessionHandler := setupSessionTest(t)
	mockSessionService.On("Logout", mock.Anything).Return().Once()

	recorder := httptest.NewRecorder()
	sessionHandler.Logout()(recorder, testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/session/logout", nil, testUser, nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestUpdateProfile(t *testing.T) {
	t.Run("Success With Avatar", func(t *testing.T) {
		mockSessionService, sessionHandler := setupSessionTest(t)
		mockSessionService.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(req *models.UpdateProfileRequest) bool {
			return req.Name == "Ana Maria" && req.Phone == "923111222" && string(req.Avatar) == "png-bytes" && req.AvatarFilename == "avatar.jpg"
		})).Return(&models.User{PublicID: "user-1", Name: "Ana Maria"}, nil).Once()

		body, contentType := testutils.MultipartBody(t, map[string]string{"name": " Ana Maria ", "phone": "923111222"}, map[string][]byte{"avatar": []byte("png-bytes")})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/session/profile", body, testUser, nil)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()
		sessionHandler.UpdateProfile()(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		var user models.User
		testutils.DecodeResponse(t, recorder, &user)
		assert.Equal(t, "Ana Maria", user.Name)
	})

	t.Run("Failure - Name Too Short", func(t *testing.T) {
		_, sessionHandler := setupSessionTest(t)

		body, contentType := testutils.MultipartBody(t, map[string]string{"name": "A"}, nil)
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/session/profile", body, testUser, nil)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()
		sessionHandler.UpdateProfile()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Failure - Not Multipart", func(t *testing.T) {
		_, sessionHandler := setupSessionTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/session/profile", strings.NewReader(`{"name":"Ana"}`), testUser, nil)
		recorder := httptest.NewRecorder()
		sessionHandler.UpdateProfile()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
