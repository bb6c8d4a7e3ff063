package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
)

// SessionListener is told about every identity change. user is nil after a
// logout.
type SessionListener func(ctx context.Context, user *models.User)

var errNoExpiry = errors.New("session token carries no expiry")

// SessionService tracks who is logged in to the storefront backend.
type SessionService struct {
	repo     repository.UserRepository
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	mu        sync.RWMutex
	user      *models.User
	listeners []SessionListener
}

func NewSessionService(repo repository.UserRepository, notifier Notifier, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionService{
		repo:     repo,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "session")),
		now:      time.Now,
	}
}

// Current returns a copy of the logged-in user, or nil.
func (s *SessionService) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}

	user := *s.user
	return &user
}

func (s *SessionService) View() models.SessionView {
	user := s.Current()
	return models.SessionView{Authenticated: user != nil, User: user}
}

func (s *SessionService) Subscribe(listener SessionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, listener)
}

// Refresh asks the backend who is logged in. Any failure leaves the
// session logged out.
func (s *SessionService) Refresh(ctx context.Context) error {

	user, err := s.repo.Me(ctx)
	if err != nil {
		s.logger.Warn("Failed to load session", slog.Any("error", err))
		s.set(ctx, nil)
		return err
	}

	s.set(ctx, user)
	return nil
}

func (s *SessionService) Login(ctx context.Context, credential string) (*models.User, error) {

	if err := s.repo.LoginWithGoogle(ctx, credential); err != nil {
		s.logger.Warn("Login failed", slog.Any("error", err))
		s.notifier.Error(userMessage(err))
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		s.notifier.Error(userMessage(err))
		return nil, err
	}

	user := s.Current()
	if user == nil {
		err := appErrors.UnauthorizedError("Login was not accepted by the storefront")
		s.notifier.Error(err.Message)
		return nil, err
	}

	s.logger.Info("User logged in", slog.String("user_id", user.PublicID))

	return user, nil
}

// Logout ends the session locally even when the backend call fails.
func (s *SessionService) Logout(ctx context.Context) {

	if err := s.repo.Logout(ctx); err != nil {
		s.logger.Warn("Backend logout failed, clearing session locally", slog.Any("error", err))
	}

	s.set(ctx, nil)
}

func (s *SessionService) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.User, error) {

	if s.Current() == nil {
		return nil, appErrors.UnauthorizedError("Please log in to update your profile")
	}

	message, err := s.repo.UpdateProfile(ctx, req)
	if err != nil {
		s.logger.Warn("Profile update failed", slog.Any("error", err))
		s.notifier.Error(userMessage(err))
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	if message == "" {
		message = "Profile updated"
	}
	s.notifier.Success(message)

	return s.Current(), nil
}

// Watch ends the session locally once the backend's session token has
// expired. The token is decoded without verification: only the backend can
// verify it, and only its expiry is of interest here.
func (s *SessionService) Watch(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkExpiry(ctx)
		}
	}
}

func (s *SessionService) checkExpiry(ctx context.Context) {

	user := s.Current()
	if user == nil {
		return
	}

	token := s.repo.SessionToken()
	if token == "" {
		// The jar dropped the cookie; let the backend decide.
		if err := s.Refresh(ctx); err != nil {
			s.logger.Warn("Session check failed", slog.Any("error", err))
		}
		return
	}

	expired, err := tokenExpired(token, s.now())
	if err != nil {
		s.logger.Debug("Session token is not a readable JWT", slog.Any("error", err))
		return
	}

	if expired {
		s.logger.Info("Session token expired", slog.String("user_id", user.PublicID))
		s.set(ctx, nil)
		s.notifier.Error("Your session has expired, please log in again")
	}
}

func tokenExpired(token string, now time.Time) (bool, error) {
	claims := &jwt.RegisteredClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, err
	}

	if claims.ExpiresAt == nil {
		return false, errNoExpiry
	}

	return !now.Before(claims.ExpiresAt.Time), nil
}

func (s *SessionService) set(ctx context.Context, user *models.User) {

	s.mu.Lock()
	previous := s.user
	s.user = user
	listeners := append([]SessionListener(nil), s.listeners...)
	s.mu.Unlock()

	if sameIdentity(previous, user) {
		return
	}

	var snapshot *models.User
	if user != nil {
		copied := *user
		snapshot = &copied
	}

	for _, listener := range listeners {
		listener(ctx, snapshot)
	}
}

func sameIdentity(a, b *models.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.PublicID == b.PublicID
}
