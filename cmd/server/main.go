package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/clubos/community-backend/internal/auth"
	"github.com/clubos/community-backend/internal/config"
	"github.com/clubos/community-backend/internal/database"
	"github.com/clubos/community-backend/internal/gateway"
	"github.com/clubos/community-backend/internal/handlers"
	"github.com/clubos/community-backend/internal/logging"
	"github.com/clubos/community-backend/internal/middleware"
	"github.com/clubos/community-backend/internal/mutation"
	"github.com/clubos/community-backend/internal/routes"
	"github.com/clubos/community-backend/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Survey definitions
	surveys, err := config.LoadSurveys(cfg.SurveysPath)
	if err != nil {
		slog.Error("failed to load survey definitions", "path", cfg.SurveysPath, "error", err)
		os.Exit(1)
	}
	slog.Info("survey definitions loaded", "surveys", len(surveys))

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Audit log handler (WARN+ async batch to audit_logs)
	auditHandler := logging.NewAuditHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		auditHandler,
	)))

	// Audit log cleanup (90-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Services
	mailer := services.NewMailer(cfg)
	apiKeys := services.NewAPIKeyService(database.DB)
	badges := services.NewBadgeService(database.DB)
	syncer := services.NewEventSyncer(database.DB, cfg)

	var images *services.ImageService
	if cfg.S3Bucket != "" {
		images, err = services.NewImageService(context.Background(), cfg)
		if err != nil {
			slog.Error("image service init failed", "error", err)
			os.Exit(1)
		}
	}

	// Mutation gateway
	registry := mutation.NewRegistry(&mutation.Env{Notifier: mailer})
	coordinator := mutation.NewCoordinator(database.DB, registry)
	verifier := auth.NewVerifier(cfg)
	gw := gateway.New(database.DB, verifier, coordinator)
	slog.Info("mutation registry built", "mutations", len(registry.Names()))

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	profileHandler := handlers.NewProfileHandler(database.DB)
	surveyHandler := handlers.NewSurveyHandler(surveys)
	badgeHandler := handlers.NewBadgeHandler(badges)
	kioskHandler := handlers.NewKioskHandler(database.DB, apiKeys)
	adminHandler := handlers.NewAdminHandler(database.DB, apiKeys, images)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, gw,
		healthHandler, profileHandler, surveyHandler, badgeHandler, kioskHandler, adminHandler)

	// Calendar sync worker
	syncDone := make(chan struct{})
	syncer.Start(syncDone)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(syncDone)
	close(cleanupDone)
	auditHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
