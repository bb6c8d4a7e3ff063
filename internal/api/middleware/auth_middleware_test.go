package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSession struct {
	user *models.User
}

func (s staticSession) Current() *models.User { return s.user }

func TestRequireSession(t *testing.T) {
	t.Run("Logged In", func(t *testing.T) {
		user := &models.User{PublicID: "user-1", Name: "Ana"}
		guard := middleware.NewSessionGuard(staticSession{user: user})

		reached := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			got, ok := middleware.UserFromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, "user-1", got.PublicID)
			assert.NotNil(t, middleware.LoggerFromContext(r.Context()))
			w.WriteHeader(http.StatusNoContent)
		})

		recorder := httptest.NewRecorder()
		guard.RequireSession(next)(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

		assert.True(t, reached)
		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("Anonymous", func(t *testing.T) {
		guard := middleware.NewSessionGuard(staticSession{})

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run without a session")
		})

		recorder := httptest.NewRecorder()
		guard.RequireSession(next)(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, resp.Error.Code)
	})
}

func TestUserFromContextEmpty(t *testing.T) {
	_, ok := middleware.UserFromContext(t.Context())
	assert.False(t, ok)
}
