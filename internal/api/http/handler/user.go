package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/auth-server/internal/api/http/middleware"
	"github.com/dtroode/auth-server/internal/logger"
	"github.com/dtroode/auth-server/internal/model"
	"github.com/dtroode/auth-server/internal/service"
)

// UserService defines account management operations.
type UserService interface {
	Register(ctx context.Context, email, password string) (model.User, error)
	Create(ctx context.Context, actor model.User, input service.CreateUserInput) (model.User, error)
	List(ctx context.Context, actor model.User, offset, limit int) ([]model.User, int, error)
	Get(ctx context.Context, actor model.User, id uuid.UUID) (model.User, error)
	UpdateProfile(ctx context.Context, actor model.User, email string) (model.User, error)
	UpdatePassword(ctx context.Context, actor model.User, currentPassword, newPassword string) error
	DeleteSelf(ctx context.Context, actor model.User) error
	Update(ctx context.Context, actor model.User, id uuid.UUID, input service.UpdateUserInput) (model.User, error)
	Delete(ctx context.Context, actor model.User, id uuid.UUID) error
}

// User handles HTTP endpoints for account management.
type User struct {
	userService UserService
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, logger *logger.Logger) *User {
	return &User{
		userService: userService,
		logger:      logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a self-service account.
func (h *User) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	user, err := h.userService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

type createUserRequest struct {
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	Role        model.Role `json:"role"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
}

// Create makes an account with explicit role and flags. Superuser only.
func (h *User) Create(c echo.Context) error {
	actor, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	user, err := h.userService.Create(c.Request().Context(), actor, service.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// List returns a page of accounts. Superuser only.
func (h *User) List(c echo.Context) error {
	actor, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	users, total, err := h.userService.List(c.Request().Context(), actor, offset, limit)
	if err != nil {
		return handleError(err)
	}

	data := make([]UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, toUserResponse(user))
	}

	return c.JSON(http.StatusOK, UsersResponse{Data: data, Count: total})
}

// GetMe returns the authenticated account.
func (h *User) GetMe(c echo.Context) error {
	actor, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(http.StatusOK, toUserResponse(actor))
}

type updateProfileRequest struct {
	Email string `json:"email"`
}

// UpdateMe changes the authenticated account's profile.
func (h *User) UpdateMe(c echo.Context) error {
	actor, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), actor, req.Email)
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdatePassword changes the authenticated account's password.
func (h *User) UpdatePassword(c echo.Context) error {
	actor, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "current and new passwords are required")
	}

	if err := h.userService.UpdatePassword(c.Request().Context(), actor, req.CurrentPassword, req.NewPassword); err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}

// DeleteMe removes the authenticated account. Refused for superusers.
func (h *User) DeleteMe(c echo.Context) error {
	actor, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := h.userService.DeleteSelf(c.Request().Context(), actor); err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// GetByID returns an account by id. Self or superuser.
func (h *User) GetByID(c echo.Context) error {
	actor, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := h.userService.Get(c.Request().Context(), actor, id)
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

type updateUserRequest struct {
	Email       *string     `json:"email"`
	Password    *string     `json:"password"`
	Role        *model.Role `json:"role"`
	IsActive    *bool       `json:"is_active"`
	IsSuperuser *bool       `json:"is_superuser"`
}

// Update applies a partial update to the target account. Superuser only.
func (h *User) Update(c echo.Context) error {
	actor, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.Update(c.Request().Context(), actor, id, service.UpdateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete removes the target account. Superuser only.
func (h *User) Delete(c echo.Context) error {
	actor, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.userService.Delete(c.Request().Context(), actor, id); err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
