package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/auth-server/internal/api/http/router"
	httpServer "github.com/dtroode/auth-server/internal/api/http/server"
	"github.com/dtroode/auth-server/internal/config"
	"github.com/dtroode/auth-server/internal/hasher"
	"github.com/dtroode/auth-server/internal/logger"
	"github.com/dtroode/auth-server/internal/mailer"
	"github.com/dtroode/auth-server/internal/model"
	"github.com/dtroode/auth-server/internal/repository/postgres"
	"github.com/dtroode/auth-server/internal/revocation"
	"github.com/dtroode/auth-server/internal/server"
	"github.com/dtroode/auth-server/internal/service"
	"github.com/dtroode/auth-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, cfg.JWT.ResetTTL())
	passwordHasher := hasher.NewBcrypt(bcrypt.DefaultCost)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	ledger := revocation.NewRedisLedger(redisClient, cfg.Redis.KeyPrefix)

	sender := mailer.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.Enabled, logger)

	tokenService := service.NewTokenService(tokenManager, ledger, logger)
	authService := service.NewAuth(userRepo, passwordHasher, tokenService, logger)
	resetService := service.NewPasswordReset(
		userRepo,
		tokenManager,
		ledger,
		passwordHasher,
		sender,
		cfg.Mail.ProjectName,
		cfg.Mail.FrontendHost,
		cfg.JWT.ResetTTL(),
		logger,
	)
	userService := service.NewUsers(userRepo, passwordHasher, logger)

	r := router.New(authService, resetService, userService, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
