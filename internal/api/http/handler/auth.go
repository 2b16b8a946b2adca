package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/auth-server/internal/logger"
	"github.com/dtroode/auth-server/internal/model"
)

// AuthService defines login and session token operations.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (model.User, error)
	IssueSession(ctx context.Context, user model.User) (accessToken string, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, accessToken string) error
}

// ResetService defines the password recovery flow.
type ResetService interface {
	Recover(ctx context.Context, email string) error
	Reset(ctx context.Context, token, newPassword string) error
}

// Auth handles HTTP endpoints for authentication and password recovery.
type Auth struct {
	authService  AuthService
	resetService ResetService
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, resetService ResetService, logger *logger.Logger) *Auth {
	return &Auth{
		authService:  authService,
		resetService: resetService,
		logger:       logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// Login authenticates credentials and returns a token pair.
func (h *Auth) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	ctx := c.Request().Context()

	user, err := h.authService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return handleError(err)
	}

	access, refresh, err := h.authService.IssueSession(ctx, user)
	if err != nil {
		h.logger.Error("Auth handler: failed to issue session",
			"user_id", user.ID,
			"error", err.Error())
		return handleError(err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(user),
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Refresh exchanges a refresh token for a new access token.
func (h *Auth) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refresh token is required")
	}

	access, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, refreshResponse{AccessToken: access})
}

// Logout revokes the presented access token.
func (h *Auth) Logout(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "authorization header required")
	}

	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

type recoverRequest struct {
	Email string `json:"email"`
}

// RecoverPassword starts the reset flow. The response is the same whether
// or not the email belongs to an account.
func (h *Auth) RecoverPassword(c echo.Context) error {
	var req recoverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	if err := h.resetService.Recover(c.Request().Context(), req.Email); err != nil {
		h.logger.Error("Auth handler: password recovery failed",
			"error", err.Error())
		return handleError(err)
	}

	return c.JSON(http.StatusAccepted, MessageResponse{Message: "If the account exists, a recovery email has been sent"})
}

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResetPassword redeems a reset token and sets a new password.
func (h *Auth) ResetPassword(c echo.Context) error {
	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Token == "" || req.NewPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token and new password are required")
	}

	if err := h.resetService.Reset(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
