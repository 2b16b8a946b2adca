package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/auth-server/internal/model"
)

// Claims represents JWT claims with token type and optional aux fields.
// Email and Role are set on access tokens only; refresh tokens carry
// neither so stale roles cannot be replayed through a refresh.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string     `json:"typ"`
	Email     string     `json:"email,omitempty"`
	Role      model.Role `json:"role,omitempty"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
}

// NewJWT creates a new JWT token manager with the provided secret key and
// per-kind lifetimes.
func NewJWT(secretKey string, accessTTL, refreshTTL, resetTTL time.Duration) *JWT {
	return &JWT{
		secretKey:  []byte(secretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		resetTTL:   resetTTL,
	}
}

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
	typeReset   = "reset"
)

var _ model.TokenManager = (*JWT)(nil)

// GenerateAccessToken creates a short-lived access token carrying the
// user's email and role alongside the subject.
func (j *JWT) GenerateAccessToken(user model.User) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
		TokenType: typeAccess,
		Email:     user.Email,
		Role:      user.Role,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, jti, nil
}

// GenerateRefreshToken creates a long-lived refresh token and returns its JTI.
func (j *JWT) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTTL)),
		},
		TokenType: typeRefresh,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, jti, nil
}

// GenerateResetToken creates a password-reset token. The subject is the
// email because the reset flow runs before the caller is authenticated.
func (j *JWT) GenerateResetToken(email string) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.resetTTL)),
		},
		TokenType: typeReset,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign reset token: %w", err)
	}

	return tokenString, jti, nil
}

// ParseAccessToken validates an access token and extracts its claims.
func (j *JWT) ParseAccessToken(tokenString string) (model.AccessClaims, error) {
	claims, err := j.parse(tokenString, typeAccess)
	if err != nil {
		return model.AccessClaims{}, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.AccessClaims{}, model.ErrInvalidToken
	}

	return model.AccessClaims{
		UserID:    userID,
		Email:     claims.Email,
		Role:      claims.Role,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ParseRefreshToken validates a refresh token and extracts its claims.
func (j *JWT) ParseRefreshToken(tokenString string) (model.RefreshClaims, error) {
	claims, err := j.parse(tokenString, typeRefresh)
	if err != nil {
		return model.RefreshClaims{}, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.RefreshClaims{}, model.ErrInvalidToken
	}

	return model.RefreshClaims{
		UserID:    userID,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ParseResetToken validates a password-reset token and extracts its claims.
func (j *JWT) ParseResetToken(tokenString string) (model.ResetClaims, error) {
	claims, err := j.parse(tokenString, typeReset)
	if err != nil {
		return model.ResetClaims{}, err
	}

	if claims.Subject == "" {
		return model.ResetClaims{}, model.ErrInvalidToken
	}

	return model.ResetClaims{
		Email:     claims.Subject,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// parse verifies signature, signing method and expiry, then checks the
// token kind. Every failure collapses to ErrInvalidToken so callers never
// see partially-trusted claims or learn which check failed.
func (j *JWT) parse(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return j.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, model.ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, model.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, model.ErrInvalidToken
	}
	return claims, nil
}
