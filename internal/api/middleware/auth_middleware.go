package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type userContextKey struct{}

var UserContextKey = userContextKey{}

// SessionSource reports who is logged in right now.
type SessionSource interface {
	Current() *models.User
}

type SessionGuard struct {
	session SessionSource
}

func NewSessionGuard(session SessionSource) *SessionGuard {
	return &SessionGuard{session: session}
}

// RequireSession rejects the request with 401 unless a user is logged in,
// and otherwise puts the user in the request context.
func (g *SessionGuard) RequireSession(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		user := g.session.Current()
		if user == nil {
			logger.Info("Request without a session")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)

		ctx = WithLogger(ctx, logger.With(slog.String("user_id", user.PublicID)))

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok && user != nil
}
