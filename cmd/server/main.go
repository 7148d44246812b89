package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
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

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(cfg); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewStdoutHandler(),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	// Mood and risk record stores
	moods, risks, err := openStores(cfg)
	if err != nil {
		slog.Error("record store setup failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	// Services
	engine := analytics.NewEngine(moods, risks, analytics.WithLocation(cfg.Location()))
	supporterService := services.NewSupporterService(database.DB)
	settingsService := services.NewSettingsService(database.DB)
	analyticsService := services.NewAnalyticsService(engine, supporterService, settingsService, cfg)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, database.DB, routes.Handlers{
		Health:    handlers.NewHealthHandler(cfg),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Supporter: handlers.NewSupporterHandler(supporterService),
		Settings:  handlers.NewSettingsHandler(settingsService),
		AdminLogs: handlers.NewAdminLogHandler(database.DB),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	database.Close()
	slog.Info("server stopped")
}

func openStores(cfg *config.Config) (analytics.MoodStore, analytics.RiskStore, error) {
	if cfg.StoreDriver != config.StoreDriverMongo {
		return repository.NewMoodRepository(database.DB), repository.NewRiskRepository(database.DB), nil
	}

	mdb, err := database.ConnectMongo(cfg)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewMongoMoodRepository(mdb), repository.NewMongoRiskRepository(mdb), nil
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
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error(), "trace_id", c.GetRespHeader(fiber.HeaderXRequestID))
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
