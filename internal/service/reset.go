package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/auth-server/internal/logger"
	"github.com/dtroode/auth-server/internal/mailer"
	"github.com/dtroode/auth-server/internal/model"
)

const resetMailTimeout = 30 * time.Second

// PasswordReset issues and redeems single-purpose password-reset tokens.
// Independent of session tokens but signed by the same codec.
type PasswordReset struct {
	userStore    model.UserStore
	manager      model.TokenManager
	ledger       model.RevocationLedger
	hasher       model.PasswordHasher
	sender       model.EmailSender
	projectName  string
	frontendHost string
	resetWindow  time.Duration
	logger       *logger.Logger
}

func NewPasswordReset(
	userStore model.UserStore,
	manager model.TokenManager,
	ledger model.RevocationLedger,
	passwordHasher model.PasswordHasher,
	sender model.EmailSender,
	projectName string,
	frontendHost string,
	resetWindow time.Duration,
	logger *logger.Logger,
) *PasswordReset {
	return &PasswordReset{
		userStore:    userStore,
		manager:      manager,
		ledger:       ledger,
		hasher:       passwordHasher,
		sender:       sender,
		projectName:  projectName,
		frontendHost: frontendHost,
		resetWindow:  resetWindow,
		logger:       logger,
	}
}

// Recover issues a reset token for the account behind email and mails it.
// The outcome is identical whether or not the account exists: existence is
// checked server-side only, and delivery runs detached so issuance never
// blocks on the mail transport.
func (s *PasswordReset) Recover(ctx context.Context, email string) error {
	email = model.NormalizeEmail(email)

	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Debug("Reset service: recovery requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	token, _, err := s.manager.GenerateResetToken(user.Email)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	subject, body, err := mailer.RenderResetEmail(mailer.ResetEmailData{
		ProjectName: s.projectName,
		Email:       user.Email,
		Link:        fmt.Sprintf("%s/reset-password?token=%s", s.frontendHost, token),
		ValidHours:  int(s.resetWindow.Hours()),
	})
	if err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resetMailTimeout)
		defer cancel()
		if err := s.sender.Send(sendCtx, user.Email, subject, body); err != nil {
			s.logger.Error("Reset service: failed to send recovery email",
				"user_id", user.ID,
				"error", err.Error())
		}
	}()

	s.logger.Info("Reset service: recovery token issued",
		"user_id", user.ID)

	return nil
}

// Reset redeems a reset token and sets a new password. Tokens are single
// use: redemption revokes the token's identifier for its remaining life,
// so presenting the same token again fails with ErrInvalidToken.
func (s *PasswordReset) Reset(ctx context.Context, tokenString, newPassword string) error {
	claims, err := s.manager.ParseResetToken(tokenString)
	if err != nil {
		return err
	}

	redeemed, err := s.ledger.IsRevoked(ctx, claims.JTI)
	if err != nil {
		s.logger.Error("Reset service: revocation ledger unavailable, admitting token",
			"jti", claims.JTI,
			"error", err.Error())
	}
	if redeemed {
		return model.ErrInvalidToken
	}

	user, err := s.userStore.GetByEmail(ctx, model.NormalizeEmail(claims.Email))
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	if !user.IsActive {
		return model.ErrInactiveAccount
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	user.PasswordHash = hash
	if _, err := s.userStore.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user password: %w", err)
	}

	if err := s.ledger.Revoke(ctx, claims.JTI, time.Until(claims.ExpiresAt)); err != nil {
		// The password is already changed; losing the single-use marker
		// is logged, not surfaced.
		s.logger.Error("Reset service: failed to mark reset token redeemed",
			"jti", claims.JTI,
			"error", err.Error())
	}

	s.logger.Info("Reset service: password reset completed",
		"user_id", user.ID)

	return nil
}
