package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager generates and validates signed tokens of the three kinds.
type TokenManager interface {
	GenerateAccessToken(user User) (token string, jti string, err error)
	GenerateRefreshToken(userID uuid.UUID) (token string, jti string, err error)
	GenerateResetToken(email string) (token string, jti string, err error)
	ParseAccessToken(token string) (AccessClaims, error)
	ParseRefreshToken(token string) (RefreshClaims, error)
	ParseResetToken(token string) (ResetClaims, error)
}

// AccessClaims is the trusted claim set recovered from an access token.
type AccessClaims struct {
	UserID    uuid.UUID
	Email     string
	Role      Role
	JTI       string
	ExpiresAt time.Time
}

// RefreshClaims is the trusted claim set recovered from a refresh token.
// It deliberately carries no role: the role is re-derived from storage
// on refresh, never trusted from an old token.
type RefreshClaims struct {
	UserID    uuid.UUID
	JTI       string
	ExpiresAt time.Time
}

// ResetClaims is the trusted claim set recovered from a password-reset
// token. The subject is an email because the flow predates authentication.
type ResetClaims struct {
	Email     string
	JTI       string
	ExpiresAt time.Time
}
