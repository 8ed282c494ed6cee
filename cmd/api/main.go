package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"centroespirita/config"
	authadapter "centroespirita/internal/adapters/auth"
	emailadapter "centroespirita/internal/adapters/email"
	httpdelivery "centroespirita/internal/delivery/http"
	"centroespirita/internal/delivery/http/controllers"
	"centroespirita/internal/delivery/http/middleware"
	"centroespirita/internal/jobs"
	"centroespirita/internal/repository/postgres"
	"centroespirita/internal/scheduling"
	"centroespirita/internal/services"

	_ "centroespirita/docs"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title Centro Espírita API
// @version 1.0
// @description Scheduling and content API for a spiritist community center: recurring attendances, one-off events, and the conflict rules between them.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := config.NewLogger()
	slog.SetDefault(logger)

	db, err := config.NewDatabase(cfg.DBUrl, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db.DB)
	roleRepo := postgres.NewRoleRepository(db.DB)
	sessionRepo := postgres.NewSessionRepository(db.DB)
	attendanceRepo := postgres.NewAttendanceRepository(db.DB)
	eventRepo := postgres.NewEventRepository(db.DB)

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.MailerProvider,
		FromAddress: cfg.MailerSender,
		FromName:    "Centro Espírita",
		SES: emailadapter.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	hasher := authadapter.NewBcryptHasher(10)
	tokenIssuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := authadapter.NewJWTVerifier(cfg.JWTSecret)

	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())
	authService := services.NewAuthService(userRepo, roleRepo, sessionRepo, hasher, tokenIssuer, cfg.JWTExpiry, cfg.RefreshTTL, emailService)
	userService := services.NewUserService(userRepo, serviceTimeout)
	attendanceService := services.NewAttendanceService(attendanceRepo, eventRepo, scheduling.NewAttendanceScheduler(nil), serviceTimeout)
	eventService := services.NewEventService(eventRepo, scheduling.NewEventScheduler(nil), serviceTimeout)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:        controllers.NewAuthController(logger, authService),
		Users:       controllers.NewUserController(logger, userService),
		Attendances: controllers.NewAttendanceController(logger, attendanceService),
		Events:      controllers.NewEventController(logger, eventService),
		Calendar:    controllers.NewCalendarController(logger, eventService, attendanceService),
	}, tokenVerifier, logger)

	handler := middleware.CORS(cfg.AllowedOrigins,
		middleware.LoggingMiddleware(logger,
			middleware.Metrics(mux, mux)))

	cleanup := jobs.NewSessionCleanup(sessionRepo, logger)
	if err := cleanup.Start(); err != nil {
		logger.Error("failed to start session cleanup", "error", err)
		os.Exit(1)
	}
	defer cleanup.Stop()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
