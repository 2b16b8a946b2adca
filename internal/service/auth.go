package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/auth-server/internal/hasher"
	"github.com/dtroode/auth-server/internal/logger"
	"github.com/dtroode/auth-server/internal/model"
)

// Auth authenticates credentials and drives the session token lifecycle.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	passwordHasher model.PasswordHasher,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       passwordHasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Authenticate resolves a user by email and verifies the password.
// Unknown email and wrong password are indistinguishable to the caller:
// both return ErrInvalidCredentials, and the unknown-email path still runs
// a bcrypt compare against a dummy hash so the latency profiles match.
func (a *Auth) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	email = model.NormalizeEmail(email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.hasher.Verify(password, hasher.DummyHash)
		return model.User{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return model.User{}, model.ErrInvalidCredentials
	}

	if !user.IsActive {
		return model.User{}, model.ErrInactiveAccount
	}

	a.logger.Debug("Auth service: user authenticated",
		"user_id", user.ID)

	return user, nil
}

// IssueSession mints an access/refresh pair for an authenticated user.
func (a *Auth) IssueSession(ctx context.Context, user model.User) (accessToken string, refreshToken string, err error) {
	access, refresh, err := a.tokenService.Issue(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue session: %w", err)
	}

	a.logger.Info("Auth service: session issued",
		"user_id", user.ID)

	return access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// user is re-loaded from storage so the role and active flag reflect the
// current record, not the state at refresh-token issuance. The refresh
// token itself is not rotated.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := a.tokenService.ValidateRefresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	if !time.Now().Before(claims.ExpiresAt) {
		return "", model.ErrInvalidToken
	}

	user, err := a.userStore.GetByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return "", model.ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by id: %w", err)
	}

	if !user.IsActive {
		return "", model.ErrInactiveAccount
	}

	access, err := a.tokenService.IssueAccess(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue new access token: %w", err)
	}

	a.logger.Info("Auth service: session refreshed",
		"user_id", user.ID)

	return access, nil
}

// Logout revokes the presented access token for its remaining lifetime.
func (a *Auth) Logout(ctx context.Context, accessToken string) error {
	return a.tokenService.Revoke(ctx, accessToken)
}

// ResolveAccess validates an access token, checks the revocation ledger
// and loads the current user record. Used by the authenticate middleware
// on every protected request.
func (a *Auth) ResolveAccess(ctx context.Context, accessToken string) (model.User, error) {
	claims, err := a.tokenService.ValidateAccess(ctx, accessToken)
	if err != nil {
		return model.User{}, err
	}

	user, err := a.userStore.GetByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrInvalidToken
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if !user.IsActive {
		return model.User{}, model.ErrInactiveAccount
	}

	return user, nil
}
