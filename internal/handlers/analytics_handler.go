package handlers

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Me returns the caller's own snapshot. ?range=7d|30d|3m|1y
func (h *AnalyticsHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	snap, err := h.analyticsService.SelfSnapshot(c.UserContext(), userID, c.Query("range"))
	if err != nil {
		return analyticsError(c, err)
	}
	return c.JSON(snap)
}

// Subject returns a linked subject's snapshot filtered by their consent.
func (h *AnalyticsHandler) Subject(c *fiber.Ctx) error {
	supporterID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	subjectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid subject ID",
		})
	}

	snap, err := h.analyticsService.SupporterSnapshot(c.UserContext(), supporterID, subjectID, c.Query("range"))
	if err != nil {
		return analyticsError(c, err)
	}
	return c.JSON(snap)
}

// Overview returns a snapshot for every subject the caller supports.
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	supporterID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	window := c.Query("range")
	subjects, err := h.analyticsService.Overview(c.UserContext(), supporterID, window)
	if err != nil {
		return analyticsError(c, err)
	}
	if window == "" {
		window = h.analyticsService.DefaultWindow()
	}
	return c.JSON(dto.OverviewResponse{Window: window, Subjects: subjects})
}

func analyticsError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotLinked):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{
			Error: true, Message: "Analytics request timed out",
		})
	}

	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Failed to compute analytics",
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
