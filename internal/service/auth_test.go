package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/auth-server/internal/hasher"
	"github.com/dtroode/auth-server/internal/mocks"
	"github.com/dtroode/auth-server/internal/model"
	"github.com/dtroode/auth-server/internal/revocation"
	"github.com/dtroode/auth-server/internal/testutil"
	"github.com/dtroode/auth-server/internal/token"
)

func newAuthFixture(t *testing.T, store model.UserStore) *Auth {
	t.Helper()
	manager := token.NewJWT("test-secret", 15*time.Minute, 720*time.Hour, 48*time.Hour)
	tokens := NewTokenService(manager, revocation.NewMemoryLedger(), testutil.MakeNoopLogger())
	return NewAuth(store, hasher.NewBcrypt(4), tokens, testutil.MakeNoopLogger())
}

func TestAuth_Authenticate_Success(t *testing.T) {
	ctx := context.Background()
	h := hasher.NewBcrypt(4)
	hash, err := h.Hash("correct-password")
	require.NoError(t, err)

	user := model.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: hash,
		Role:         model.RoleUser,
		IsActive:     true,
	}

	store := &mocks.UserStore{}
	store.On("GetByEmail", ctx, "user@example.com").Return(user, nil).Once()

	auth := newAuthFixture(t, store)

	got, err := auth.Authenticate(ctx, "User@Example.com", "correct-password")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuth_Authenticate_IndistinguishableFailures(t *testing.T) {
	ctx := context.Background()
	h := hasher.NewBcrypt(4)
	hash, err := h.Hash("correct-password")
	require.NoError(t, err)

	user := model.User{
		ID:           uuid.New(),
		Email:        "real@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}

	store := &mocks.UserStore{}
	store.On("GetByEmail", ctx, "nobody@example.com").Return(model.User{}, model.ErrNotFound)
	store.On("GetByEmail", ctx, "real@example.com").Return(user, nil)

	auth := newAuthFixture(t, store)

	_, unknownErr := auth.Authenticate(ctx, "nobody@example.com", "anything")
	_, wrongErr := auth.Authenticate(ctx, "real@example.com", "wrongpass")

	assert.ErrorIs(t, unknownErr, model.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, model.ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
}

func TestAuth_Authenticate_DummyCompareNeverAuthenticates(t *testing.T) {
	ctx := context.Background()

	store := &mocks.UserStore{}
	store.On("GetByEmail", ctx, mock.Anything).Return(model.User{}, model.ErrNotFound)

	auth := newAuthFixture(t, store)

	// "password" is the preimage of the dummy hash; a hit against it must
	// still come back as invalid credentials.
	_, err := auth.Authenticate(ctx, "nobody@example.com", "password")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Authenticate_Inactive(t *testing.T) {
	ctx := context.Background()
	h := hasher.NewBcrypt(4)
	hash, err := h.Hash("pw")
	require.NoError(t, err)

	store := &mocks.UserStore{}
	store.On("GetByEmail", ctx, "inactive@example.com").Return(model.User{
		ID:           uuid.New(),
		Email:        "inactive@example.com",
		PasswordHash: hash,
		IsActive:     false,
	}, nil).Once()

	auth := newAuthFixture(t, store)

	_, err = auth.Authenticate(ctx, "inactive@example.com", "pw")
	assert.ErrorIs(t, err, model.ErrInactiveAccount)
}

func TestAuth_SessionRoundtrip(t *testing.T) {
	ctx := context.Background()
	user := model.User{
		ID:       uuid.New(),
		Email:    "u@example.com",
		Role:     model.RoleUser,
		IsActive: true,
	}

	store := &mocks.UserStore{}
	store.On("GetByID", ctx, user.ID).Return(user, nil)

	auth := newAuthFixture(t, store)

	access, refresh, err := auth.IssueSession(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	resolved, err := auth.ResolveAccess(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestAuth_Logout_RevokesAccess(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Email: "u@example.com", Role: model.RoleUser, IsActive: true}

	store := &mocks.UserStore{}
	store.On("GetByID", ctx, user.ID).Return(user, nil)

	auth := newAuthFixture(t, store)

	access, _, err := auth.IssueSession(ctx, user)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, access))

	// The token has not expired, but its identifier is on the ledger now.
	_, err = auth.ResolveAccess(ctx, access)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestAuth_Refresh_RederivesRole(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	issuedAs := model.User{ID: userID, Email: "u@example.com", Role: model.RoleUser, IsActive: true}
	// Role changed in storage after the refresh token was issued.
	currentUser := model.User{ID: userID, Email: "u@example.com", Role: model.RoleAdmin, IsActive: true}

	store := &mocks.UserStore{}
	store.On("GetByID", ctx, userID).Return(currentUser, nil)

	manager := token.NewJWT("test-secret", 15*time.Minute, 720*time.Hour, 48*time.Hour)
	tokens := NewTokenService(manager, revocation.NewMemoryLedger(), testutil.MakeNoopLogger())
	auth := NewAuth(store, hasher.NewBcrypt(4), tokens, testutil.MakeNoopLogger())

	_, refresh, err := auth.IssueSession(ctx, issuedAs)
	require.NoError(t, err)

	access, err := auth.Refresh(ctx, refresh)
	require.NoError(t, err)

	claims, err := manager.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestAuth_Refresh_RejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Email: "u@example.com", Role: model.RoleUser, IsActive: true}

	store := &mocks.UserStore{}
	store.On("GetByID", ctx, user.ID).Return(user, nil)

	auth := newAuthFixture(t, store)

	access, _, err := auth.IssueSession(ctx, user)
	require.NoError(t, err)

	_, err = auth.Refresh(ctx, access)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestAuth_Refresh_DeletedUser(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Email: "u@example.com", Role: model.RoleUser, IsActive: true}

	store := &mocks.UserStore{}
	store.On("GetByID", ctx, user.ID).Return(model.User{}, model.ErrNotFound)

	auth := newAuthFixture(t, store)

	_, refresh, err := auth.IssueSession(ctx, user)
	require.NoError(t, err)

	_, err = auth.Refresh(ctx, refresh)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestAuth_Refresh_InactiveUser(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Email: "u@example.com", Role: model.RoleUser, IsActive: true}
	inactive := user
	inactive.IsActive = false

	store := &mocks.UserStore{}
	store.On("GetByID", ctx, user.ID).Return(inactive, nil)

	auth := newAuthFixture(t, store)

	_, refresh, err := auth.IssueSession(ctx, user)
	require.NoError(t, err)

	_, err = auth.Refresh(ctx, refresh)
	assert.ErrorIs(t, err, model.ErrInactiveAccount)
}
