package models

import (
	"time"

	"github.com/google/uuid"
)

// TokenPair is issued on login and on refresh. The refresh token is single
// use.
type TokenPair struct {
	UserID           uuid.UUID `json:"user_id"`
	TokenType        string    `json:"token_type"`
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}
