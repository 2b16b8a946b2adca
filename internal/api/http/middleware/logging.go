package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/auth-server/internal/logger"
)

// Logging logs HTTP requests and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Middleware logs method, path, duration and status for each request.
func (l *Logging) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		l.logger.Info("HTTP request started",
			"method", req.Method,
			"path", req.URL.Path)

		err := next(c)

		duration := time.Since(start)

		status := c.Response().Status
		if err != nil {
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			} else {
				status = http.StatusInternalServerError
			}
		}

		l.logger.Info("HTTP request completed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", duration.Milliseconds(),
			"status", status)

		if err != nil {
			l.logger.Error("HTTP request failed",
				"method", req.Method,
				"path", req.URL.Path,
				"error", err.Error(),
				"status", status)
		}

		return err
	}
}
