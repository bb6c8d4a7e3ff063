package service

import (
	"html"
	"log/slog"
	"strings"
	"sync"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

const (
	defaultAlertTTL  = 5 * time.Second
	defaultMaxAlerts = 20
)

// AlertService keeps the short-lived toast messages shown to the user.
// Messages often come straight from the backend, so markup is stripped.
type AlertService struct {
	mu     sync.Mutex
	alerts []models.Alert
	ttl    time.Duration
	max    int
	policy *bluemonday.Policy
	now    func() time.Time
	logger *slog.Logger
}

func NewAlertService(ttl time.Duration, maxAlerts int, logger *slog.Logger) *AlertService {
	if ttl <= 0 {
		ttl = defaultAlertTTL
	}
	if maxAlerts <= 0 {
		maxAlerts = defaultMaxAlerts
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AlertService{
		ttl:    ttl,
		max:    maxAlerts,
		policy: bluemonday.StrictPolicy(),
		now:    time.Now,
		logger: logger,
	}
}

func (s *AlertService) Success(message string) {
	s.push(message, models.AlertSuccess)
}

func (s *AlertService) Error(message string) {
	s.push(message, models.AlertError)
}

// List returns the alerts that have not expired, oldest first.
func (s *AlertService) List() []models.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()

	alerts := make([]models.Alert, len(s.alerts))
	copy(alerts, s.alerts)

	return alerts
}

func (s *AlertService) Dismiss(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, alert := range s.alerts {
		if alert.ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			return nil
		}
	}

	return appErrors.NotFoundError("Alert not found")
}

func (s *AlertService) push(message string, alertType models.AlertType) {
	// Entities are decoded first so encoded tags meet the policy; the result
	// stays HTML-escaped.
	clean := strings.TrimSpace(s.policy.Sanitize(html.UnescapeString(message)))
	if clean == "" {
		return
	}

	now := s.now()
	alert := models.Alert{
		ID:        uuid.New(),
		Message:   clean,
		Type:      alertType,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	s.alerts = append(s.alerts, alert)

	if overflow := len(s.alerts) - s.max; overflow > 0 {
		s.alerts = append([]models.Alert(nil), s.alerts[overflow:]...)
	}

	s.logger.Debug("Alert raised", slog.String("type", string(alertType)), slog.String("message", clean))
}

func (s *AlertService) pruneLocked() {
	now := s.now()

	kept := s.alerts[:0]
	for _, alert := range s.alerts {
		if now.Before(alert.ExpiresAt) {
			kept = append(kept, alert)
		}
	}

	s.alerts = kept
}
