package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/auth-server/internal/model"
)

// handleError maps the service error taxonomy to HTTP statuses. Anything
// outside the taxonomy becomes an opaque 500.
func handleError(err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, model.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	case errors.Is(err, model.ErrInactiveAccount):
		return echo.NewHTTPError(http.StatusForbidden, "account is inactive")
	case errors.Is(err, model.ErrInsufficientPrivilege):
		return echo.NewHTTPError(http.StatusForbidden, "insufficient privilege")
	case errors.Is(err, model.ErrUserNotFound), errors.Is(err, model.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	case errors.Is(err, model.ErrUserAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, "user with this email already exists")
	case errors.Is(err, model.ErrSamePassword):
		return echo.NewHTTPError(http.StatusBadRequest, "new password cannot be the same as the current one")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
