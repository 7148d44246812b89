package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Analytics *handlers.AnalyticsHandler
	Supporter *handlers.SupporterHandler
	Settings  *handlers.SettingsHandler
	AdminLogs *handlers.AdminLogHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	protected := middleware.JWTProtected(cfg)

	// Snapshots are comparatively expensive: 20 req/min per IP
	analytics := api.Group("/analytics", protected)
	analytics.Use(limiter.New(limiter.Config{
		Max:               20,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	analytics.Get("/me", h.Analytics.Me)
	analytics.Get("/overview", h.Analytics.Overview)
	analytics.Get("/subjects/:id", h.Analytics.Subject)

	supporters := api.Group("/supporters", protected)
	supporters.Get("/", h.Supporter.List)
	supporters.Post("/", h.Supporter.Link)
	supporters.Get("/subjects", h.Supporter.Subjects)
	supporters.Delete("/:id", h.Supporter.Revoke)

	settings := api.Group("/settings", protected)
	settings.Get("/visibility", h.Settings.GetVisibility)
	settings.Put("/visibility", h.Settings.UpdateVisibility)

	admin := api.Group("/admin", protected, middleware.AdminRequired(db, cfg))
	admin.Get("/logs", h.AdminLogs.ListLogs)
}
