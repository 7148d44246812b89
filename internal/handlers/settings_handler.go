package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) GetVisibility(c *fiber.Ctx) error {
	subjectID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	settings, err := h.settingsService.Get(c.UserContext(), subjectID)
	if err != nil {
		slog.Error("load visibility failed", "action", "get_visibility", "subject_id", subjectID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load visibility settings",
		})
	}
	return c.JSON(services.VisibilityResponseOf(settings))
}

// UpdateVisibility applies only the flags present in the body.
func (h *SettingsHandler) UpdateVisibility(c *fiber.Ctx) error {
	subjectID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateVisibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	settings, err := h.settingsService.Update(c.UserContext(), subjectID, &req)
	if err != nil {
		slog.Error("update visibility failed", "action", "update_visibility", "subject_id", subjectID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update visibility settings",
		})
	}
	return c.JSON(services.VisibilityResponseOf(settings))
}
