package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/auth-server/internal/authz"
	"github.com/dtroode/auth-server/internal/logger"
	"github.com/dtroode/auth-server/internal/model"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// Users implements account management on top of the user store.
// Privilege checks live here, next to the operations they gate; the HTTP
// layer only resolves the actor.
type Users struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	logger    *logger.Logger
}

func NewUsers(userStore model.UserStore, passwordHasher model.PasswordHasher, logger *logger.Logger) *Users {
	return &Users{
		userStore: userStore,
		hasher:    passwordHasher,
		logger:    logger,
	}
}

// CreateUserInput describes an account created by a superuser.
type CreateUserInput struct {
	Email       string
	Password    string
	Role        model.Role
	IsActive    bool
	IsSuperuser bool
}

// UpdateUserInput describes an admin-side partial update. Nil fields are
// left unchanged.
type UpdateUserInput struct {
	Email       *string
	Password    *string
	Role        *model.Role
	IsActive    *bool
	IsSuperuser *bool
}

// Register creates a self-service account with the default role.
func (s *Users) Register(ctx context.Context, email, password string) (model.User, error) {
	email = model.NormalizeEmail(email)

	if err := s.ensureEmailFree(ctx, email, uuid.Nil); err != nil {
		return model.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.userStore.Create(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user registered",
		"user_id", created.ID)

	return created, nil
}

// Create makes an account on behalf of a superuser, with an explicit role
// and flags.
func (s *Users) Create(ctx context.Context, actor model.User, input CreateUserInput) (model.User, error) {
	if !actor.IsSuperuser {
		return model.User{}, model.ErrInsufficientPrivilege
	}

	email := model.NormalizeEmail(input.Email)
	if err := s.ensureEmailFree(ctx, email, uuid.Nil); err != nil {
		return model.User{}, err
	}

	role := input.Role
	if !role.Valid() {
		role = model.RoleUser
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     input.IsActive,
		IsSuperuser:  input.IsSuperuser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.userStore.Create(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user created",
		"user_id", created.ID,
		"actor_id", actor.ID)

	return created, nil
}

// List returns a page of accounts with the total count. Superuser only.
func (s *Users) List(ctx context.Context, actor model.User, offset, limit int) ([]model.User, int, error) {
	if !actor.IsSuperuser {
		return nil, 0, model.ErrInsufficientPrivilege
	}

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	users, total, err := s.userStore.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// Get returns an account by id, visible to the account itself and to
// superusers.
func (s *Users) Get(ctx context.Context, actor model.User, id uuid.UUID) (model.User, error) {
	if !authz.IsSelfOrSuperuser(actor, id) {
		return model.User{}, model.ErrInsufficientPrivilege
	}

	user, err := s.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// UpdateProfile changes the actor's own email.
func (s *Users) UpdateProfile(ctx context.Context, actor model.User, email string) (model.User, error) {
	email = model.NormalizeEmail(email)
	if email != actor.Email {
		if err := s.ensureEmailFree(ctx, email, actor.ID); err != nil {
			return model.User{}, err
		}
	}

	actor.Email = email
	actor.UpdatedAt = time.Now()

	updated, err := s.userStore.Update(ctx, actor)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return updated, nil
}

// UpdatePassword changes the actor's own password after verifying the
// current one.
func (s *Users) UpdatePassword(ctx context.Context, actor model.User, currentPassword, newPassword string) error {
	if !s.hasher.Verify(currentPassword, actor.PasswordHash) {
		return model.ErrInvalidCredentials
	}
	if currentPassword == newPassword {
		return model.ErrSamePassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	actor.PasswordHash = hash
	actor.UpdatedAt = time.Now()

	if _, err := s.userStore.Update(ctx, actor); err != nil {
		return fmt.Errorf("failed to update user password: %w", err)
	}

	s.logger.Info("User service: password updated",
		"user_id", actor.ID)

	return nil
}

// DeleteSelf removes the actor's own account. Superusers are refused.
func (s *Users) DeleteSelf(ctx context.Context, actor model.User) error {
	if !authz.CanDeleteSelf(actor) {
		return model.ErrInsufficientPrivilege
	}

	if err := s.userStore.Delete(ctx, actor.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User service: user deleted own account",
		"user_id", actor.ID)

	return nil
}

// Update applies an admin-side partial update to the target account.
// Superuser only.
func (s *Users) Update(ctx context.Context, actor model.User, id uuid.UUID, input UpdateUserInput) (model.User, error) {
	if !actor.IsSuperuser {
		return model.User{}, model.ErrInsufficientPrivilege
	}

	user, err := s.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if input.Email != nil {
		email := model.NormalizeEmail(*input.Email)
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return model.User{}, err
			}
		}
		user.Email = email
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if input.Role != nil && input.Role.Valid() {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsSuperuser != nil {
		user.IsSuperuser = *input.IsSuperuser
	}
	user.UpdatedAt = time.Now()

	updated, err := s.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: user updated",
		"user_id", updated.ID,
		"actor_id", actor.ID)

	return updated, nil
}

// Delete removes the target account. Superuser only, and never the
// actor's own account through this path.
func (s *Users) Delete(ctx context.Context, actor model.User, id uuid.UUID) error {
	if !actor.IsSuperuser {
		return model.ErrInsufficientPrivilege
	}
	if actor.ID == id {
		return model.ErrInsufficientPrivilege
	}

	if _, err := s.userStore.GetByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := s.userStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User service: user deleted",
		"user_id", id,
		"actor_id", actor.ID)

	return nil
}

// ensureEmailFree fails with ErrUserAlreadyExists when another account
// already holds email. excludeID skips the account being updated.
func (s *Users) ensureEmailFree(ctx context.Context, email string, excludeID uuid.UUID) error {
	existing, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != excludeID {
		return model.ErrUserAlreadyExists
	}
	return nil
}
