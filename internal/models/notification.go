package models

import (
	"time"

	"github.com/google/uuid"
)

// Alert is a user-facing toast message.
type Alert struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Type      AlertType `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Envelope is the `{error, message}` convention every backend mutation uses.
// Error=true is a business rejection, distinct from a transport failure.
type Envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
