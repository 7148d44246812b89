package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
		Store:     h.cfg.StoreDriver,
	}

	if err := database.Ping(); err != nil {
		resp.Status = "degraded"
		resp.DB = "unhealthy: " + err.Error()
	}

	if h.cfg.StoreDriver == config.StoreDriverMongo {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		resp.StoreDB = "ok"
		if err := database.PingMongo(ctx); err != nil {
			resp.Status = "degraded"
			resp.StoreDB = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(resp)
}
