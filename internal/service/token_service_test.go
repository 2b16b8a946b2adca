package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/auth-server/internal/mocks"
	"github.com/dtroode/auth-server/internal/model"
	"github.com/dtroode/auth-server/internal/testutil"
)

func TestTokenService_Issue(t *testing.T) {
	user := model.User{ID: uuid.New(), Email: "u@example.com", Role: model.RoleUser}

	manager := &mocks.TokenManager{}
	ledger := &mocks.RevocationLedger{}

	manager.On("GenerateAccessToken", user).Return("access", "jti-a", nil).Once()
	manager.On("GenerateRefreshToken", user.ID).Return("refresh", "jti-r", nil).Once()

	svc := NewTokenService(manager, ledger, testutil.MakeNoopLogger())

	access, refresh, err := svc.Issue(user)
	require.NoError(t, err)
	assert.Equal(t, "access", access)
	assert.Equal(t, "refresh", refresh)
}

func TestTokenService_Issue_ManagerError(t *testing.T) {
	user := model.User{ID: uuid.New()}

	manager := &mocks.TokenManager{}
	ledger := &mocks.RevocationLedger{}

	manager.On("GenerateAccessToken", user).Return("", "", assert.AnError).Once()

	svc := NewTokenService(manager, ledger, testutil.MakeNoopLogger())

	_, _, err := svc.Issue(user)
	require.Error(t, err)
}

func TestTokenService_ValidateAccess(t *testing.T) {
	ctx := context.Background()
	claims := model.AccessClaims{
		UserID:    uuid.New(),
		JTI:       "jti",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	manager := &mocks.TokenManager{}
	ledger := &mocks.RevocationLedger{}

	manager.On("ParseAccessToken", "token").Return(claims, nil).Once()
	ledger.On("IsRevoked", ctx, "jti").Return(false, nil).Once()

	svc := NewTokenService(manager, ledger, testutil.MakeNoopLogger())

	got, err := svc.ValidateAccess(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, claims, got)
}

func TestTokenService_ValidateAccess_Revoked(t *testing.T) {
	ctx := context.Background()
	claims := model.AccessClaims{
		UserID:    uuid.New(),
		JTI:       "jti",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	manager := &mocks.TokenManager{}
	ledger := &mocks.RevocationLedger{}

	manager.On("ParseAccessToken", "token").Return(claims, nil).Once()
	ledger.On("IsRevoked", ctx, "jti").Return(true, nil).Once()

	svc := NewTokenService(manager, ledger, testutil.MakeNoopLogger())

	_, err := svc.ValidateAccess(ctx, "token")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestTokenService_ValidateAccess_LedgerDown_FailsOpen(t *testing.T) {
	ctx := context.Background()
	claims := model.AccessClaims{
		UserID:    uuid.New(),
		JTI:       "jti",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	manager := &mocks.TokenManager{}
	ledger := &mocks.RevocationLedger{}

	manager.On("ParseAccessToken", "token").Return(claims, nil).Once()
	ledger.On("IsRevoked", ctx, "jti").Return(false, assert.AnError).Once()

	svc := NewTokenService(manager, ledger, testutil.MakeNoopLogger())

	got, err := svc.ValidateAccess(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, claims, got)
}

func TestTokenService_ValidateAccess_ParseError(t *testing.T) {
	ctx := context.Background()

	manager := &mocks.TokenManager{}
	ledger := &mocks.RevocationLedger{}

	manager.On("ParseAccessToken", "bad").Return(model.AccessClaims{}, model.ErrInvalidToken).Once()

	svc := NewTokenService(manager, ledger, testutil.MakeNoopLogger())

	_, err := svc.ValidateAccess(ctx, "bad")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestTokenService_ValidateRefresh_Expired(t *testing.T) {
	ctx := context.Background()
	claims := model.RefreshClaims{
		UserID:    uuid.New(),
		JTI:       "jti",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	manager := &mocks.TokenManager{}
	ledger := &mocks.RevocationLedger{}

	manager.On("ParseRefreshToken", "token").Return(claims, nil).Once()

	svc := NewTokenService(manager, ledger, testutil.MakeNoopLogger())

	_, err := svc.ValidateRefresh(ctx, "token")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestTokenService_Revoke(t *testing.T) {
	ctx := context.Background()
	claims := model.AccessClaims{
		UserID:    uuid.New(),
		JTI:       "jti",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	manager := &mocks.TokenManager{}
	ledger := &mocks.RevocationLedger{}

	manager.On("ParseAccessToken", "token").Return(claims, nil).Once()
	ledger.On("Revoke", ctx, "jti", mock.AnythingOfType("time.Duration")).Return(nil).Once()

	svc := NewTokenService(manager, ledger, testutil.MakeNoopLogger())

	require.NoError(t, svc.Revoke(ctx, "token"))
	ledger.AssertExpectations(t)
}

func TestTokenService_Revoke_InvalidToken(t *testing.T) {
	ctx := context.Background()

	manager := &mocks.TokenManager{}
	ledger := &mocks.RevocationLedger{}

	manager.On("ParseAccessToken", "bad").Return(model.AccessClaims{}, model.ErrInvalidToken).Once()

	svc := NewTokenService(manager, ledger, testutil.MakeNoopLogger())

	err := svc.Revoke(ctx, "bad")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}
