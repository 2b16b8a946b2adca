package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/auth-server/internal/logger"
	"github.com/dtroode/auth-server/internal/model"
)

// TokenService provides high-level operations for issuing, validating,
// and revoking tokens. It composes the TokenManager and RevocationLedger.
type TokenService struct {
	manager model.TokenManager
	ledger  model.RevocationLedger
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, ledger model.RevocationLedger, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, ledger: ledger, logger: logger}
}

// Issue mints an access/refresh pair for the user. Issuance is pure:
// nothing is persisted, so an abandoned pair costs nothing.
func (s *TokenService) Issue(user model.User) (accessToken string, refreshToken string, err error) {
	access, _, err := s.manager.GenerateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("issue access: %w", err)
	}

	refresh, _, err := s.manager.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh: %w", err)
	}

	return access, refresh, nil
}

// IssueAccess mints a single access token carrying the user's current
// email and role.
func (s *TokenService) IssueAccess(user model.User) (string, error) {
	access, _, err := s.manager.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("issue access: %w", err)
	}
	return access, nil
}

// ValidateAccess parses an access token and checks its identifier against
// the revocation ledger. On ledger unavailability the token is admitted
// (fail open): a Redis outage must not log out every session at once, and
// revoked identifiers expire together with the tokens they cover anyway.
func (s *TokenService) ValidateAccess(ctx context.Context, tokenString string) (model.AccessClaims, error) {
	claims, err := s.manager.ParseAccessToken(tokenString)
	if err != nil {
		return model.AccessClaims{}, err
	}

	revoked, err := s.ledger.IsRevoked(ctx, claims.JTI)
	if err != nil {
		s.logger.Error("Token service: revocation ledger unavailable, admitting token",
			"jti", claims.JTI,
			"error", err.Error())
	}
	if revoked {
		return model.AccessClaims{}, model.ErrInvalidToken
	}

	return claims, nil
}

// ValidateRefresh parses a refresh token, re-checks expiry and consults
// the ledger. The expiry re-check is deliberate even though parsing
// already enforces it: exact expiry is authoritative here.
func (s *TokenService) ValidateRefresh(ctx context.Context, tokenString string) (model.RefreshClaims, error) {
	claims, err := s.manager.ParseRefreshToken(tokenString)
	if err != nil {
		return model.RefreshClaims{}, err
	}

	if !time.Now().Before(claims.ExpiresAt) {
		return model.RefreshClaims{}, model.ErrInvalidToken
	}

	revoked, err := s.ledger.IsRevoked(ctx, claims.JTI)
	if err != nil {
		s.logger.Error("Token service: revocation ledger unavailable, admitting token",
			"jti", claims.JTI,
			"error", err.Error())
	}
	if revoked {
		return model.RefreshClaims{}, model.ErrInvalidToken
	}

	return claims, nil
}

// Revoke invalidates an access token for its remaining lifetime. Revoking
// the same token twice is harmless.
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.manager.ParseAccessToken(tokenString)
	if err != nil {
		return err
	}

	if err := s.ledger.Revoke(ctx, claims.JTI, time.Until(claims.ExpiresAt)); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}

	s.logger.Info("Token service: access token revoked",
		"jti", claims.JTI)

	return nil
}
