package router

import (
	"github.com/labstack/echo/v4"

	"github.com/dtroode/auth-server/internal/api/http/handler"
	"github.com/dtroode/auth-server/internal/api/http/middleware"
	"github.com/dtroode/auth-server/internal/logger"
	"github.com/dtroode/auth-server/internal/service"
)

// Router manages HTTP route registration and middleware configuration.
type Router struct {
	authService  *service.Auth
	resetService *service.PasswordReset
	userService  *service.Users
	logger       *logger.Logger
}

// New creates a new Router instance wiring the auth, reset and user services.
func New(
	authService *service.Auth,
	resetService *service.PasswordReset,
	userService *service.Users,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:  authService,
		resetService: resetService,
		userService:  userService,
		logger:       logger,
	}
}

// Register registers all routes and middleware.
//
// Returns the configured echo instance.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.logger)

	e.Use(logging.Middleware)

	authHandler := handler.NewAuth(r.authService, r.resetService, r.logger)
	userHandler := handler.NewUser(r.userService, r.logger)

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, authenticate.Middleware)
	auth.POST("/password-recovery", authHandler.RecoverPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.GET("", userHandler.List, authenticate.Middleware, middleware.RequireSuperuser)
	users.POST("", userHandler.Create, authenticate.Middleware, middleware.RequireSuperuser)
	users.GET("/me", userHandler.GetMe, authenticate.Middleware)
	users.PATCH("/me", userHandler.UpdateMe, authenticate.Middleware)
	users.PATCH("/me/password", userHandler.UpdatePassword, authenticate.Middleware)
	users.DELETE("/me", userHandler.DeleteMe, authenticate.Middleware)
	users.GET("/:id", userHandler.GetByID, authenticate.Middleware)
	users.PATCH("/:id", userHandler.Update, authenticate.Middleware, middleware.RequireSuperuser)
	users.DELETE("/:id", userHandler.Delete, authenticate.Middleware, middleware.RequireSuperuser)

	return e
}
