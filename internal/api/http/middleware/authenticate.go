package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/auth-server/internal/logger"
	"github.com/dtroode/auth-server/internal/model"
)

// userContextKey is the echo context key under which the authenticated
// user is stored.
const userContextKey = "auth.user"

// AuthService resolves users from bearer access tokens.
type AuthService interface {
	ResolveAccess(ctx context.Context, token string) (model.User, error)
}

// Authenticate validates bearer tokens and injects the user into
// the request context.
type Authenticate struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authService AuthService, logger *logger.Logger) *Authenticate {
	return &Authenticate{authService: authService, logger: logger}
}

// Middleware parses the Authorization header, validates the access token
// and stores the resolved user on the request context.
func (m *Authenticate) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization token")
		}

		user, err := m.authService.ResolveAccess(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization token")
		}

		SetUser(c, user)
		return next(c)
	}
}

// RequireSuperuser rejects requests whose authenticated user is not a
// superuser. Must run after Authenticate.
func RequireSuperuser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := UserFromContext(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization token")
		}
		if !user.IsSuperuser {
			return echo.NewHTTPError(http.StatusForbidden, "superuser access required")
		}
		return next(c)
	}
}

// SetUser stores the authenticated user on the request context.
func SetUser(c echo.Context, user model.User) {
	c.Set(userContextKey, user)
}

// UserFromContext retrieves the authenticated user stored by Authenticate.
func UserFromContext(c echo.Context) (model.User, bool) {
	user, ok := c.Get(userContextKey).(model.User)
	return user, ok
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
