package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/auth-server/internal/model"
	"github.com/dtroode/auth-server/internal/testutil"
)

type stubAuthService struct {
	user model.User
	err  error
}

func (s *stubAuthService) ResolveAccess(_ context.Context, _ string) (model.User, error) {
	return s.user, s.err
}

func newEchoContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthenticate_Middleware(t *testing.T) {
	t.Parallel()

	user := model.User{ID: uuid.New(), Email: "user@example.com"}

	tests := []struct {
		name       string
		authHeader string
		svc        *stubAuthService
		wantCode   int
		wantUser   bool
	}{
		{
			name:       "missing authorization header",
			authHeader: "",
			svc:        &stubAuthService{},
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid",
			svc:        &stubAuthService{err: model.ErrInvalidToken},
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "inactive account",
			authHeader: "Bearer token",
			svc:        &stubAuthService{err: model.ErrInactiveAccount},
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer token",
			svc:        &stubAuthService{user: user},
			wantUser:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewAuthenticate(tt.svc, testutil.MakeNoopLogger())

			c, _ := newEchoContext(tt.authHeader)

			var seen model.User
			var seenOK bool
			next := func(c echo.Context) error {
				seen, seenOK = UserFromContext(c)
				return nil
			}

			err := m.Middleware(next)(c)

			if tt.wantUser {
				require.NoError(t, err)
				assert.True(t, seenOK)
				assert.Equal(t, user.ID, seen.ID)
				return
			}

			require.Error(t, err)
			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.False(t, seenOK)
		})
	}
}

func TestRequireSuperuser(t *testing.T) {
	t.Parallel()

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("no authenticated user", func(t *testing.T) {
		t.Parallel()

		c, _ := newEchoContext("")
		err := RequireSuperuser(next)(c)

		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("regular user refused", func(t *testing.T) {
		t.Parallel()

		c, _ := newEchoContext("")
		c.Set(userContextKey, model.User{ID: uuid.New()})

		err := RequireSuperuser(next)(c)

		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("superuser passes", func(t *testing.T) {
		t.Parallel()

		c, rec := newEchoContext("")
		c.Set(userContextKey, model.User{ID: uuid.New(), IsSuperuser: true})

		require.NoError(t, RequireSuperuser(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
