package models

import (
	"time"

	"github.com/google/uuid"
)

// Session represents an authenticated bearer-token session
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
