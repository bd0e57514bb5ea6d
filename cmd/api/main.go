// Package main wires the vacation booking service together and starts the
// HTTP server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"

	"vacationbooking/config"
	"vacationbooking/internal/adapters/auth"
	"vacationbooking/internal/adapters/email"
	delivery "vacationbooking/internal/delivery/http"
	"vacationbooking/internal/delivery/http/controllers"
	"vacationbooking/internal/delivery/http/middleware"
	"vacationbooking/internal/repository/postgres"
	"vacationbooking/internal/services"
	"vacationbooking/migrations"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "err", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}

	if err := migrate(db); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}
	logger.Info("database ready")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	vacationRepo := postgres.NewVacationRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)

	// Adapters
	tokenCodec := auth.NewJWTCodec(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	notifier := services.NewEmailNotifier(emailService, userRepo, invitationRepo, logger)
	authService := services.NewAuthService(userRepo, hasher, tokenCodec, cfg.TokenExpiry, serviceTimeout)
	vacationService := services.NewVacationService(vacationRepo, invitationRepo, userRepo, notifier, time.Now, serviceTimeout)
	activityService := services.NewActivityService(activityRepo, vacationRepo, invitationRepo, serviceTimeout)
	invitationService := services.NewInvitationService(invitationRepo, vacationRepo, userRepo, notifier, time.Now, serviceTimeout)

	// Delivery
	authController := controllers.NewAuthController(logger, authService)
	vacationController := controllers.NewVacationController(logger, vacationService)
	activityController := controllers.NewActivityController(logger, activityService)
	invitationController := controllers.NewInvitationController(logger, invitationService)

	mux := delivery.NewRouter(logger, tokenCodec, authController, vacationController, activityController, invitationController)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-stop
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// migrate applies all pending migrations from the embedded filesystem.
func migrate(db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}
