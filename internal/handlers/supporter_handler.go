package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SupporterHandler struct {
	supporterService *services.SupporterService
}

func NewSupporterHandler(supporterService *services.SupporterService) *SupporterHandler {
	return &SupporterHandler{supporterService: supporterService}
}

// List returns the caller's active supporters.
func (h *SupporterHandler) List(c *fiber.Ctx) error {
	subjectID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	links, err := h.supporterService.List(c.UserContext(), subjectID)
	if err != nil {
		slog.Error("list supporters failed", "action", "list_supporters", "subject_id", subjectID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list supporters",
		})
	}
	return c.JSON(fiber.Map{"data": toLinkResponses(links)})
}

// Link adds a supporter for the caller.
func (h *SupporterHandler) Link(c *fiber.Ctx) error {
	subjectID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.LinkSupporterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.SupporterID == uuid.Nil {
		return badRequest(c, "supporter_id is required")
	}

	link, err := h.supporterService.Link(c.UserContext(), subjectID, req.SupporterID, req.Relationship)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfLink):
			return badRequest(c, err.Error())
		case errors.Is(err, services.ErrSupporterNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrLinkExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("link supporter failed", "action", "link_supporter", "subject_id", subjectID.String(), "supporter_id", req.SupporterID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to link supporter",
		})
	}

	slog.Info("supporter linked", "subject_id", subjectID.String(), "supporter_id", link.SupporterID.String())
	return c.Status(fiber.StatusCreated).JSON(toLinkResponse(*link))
}

// Revoke removes one of the caller's supporter links.
func (h *SupporterHandler) Revoke(c *fiber.Ctx) error {
	subjectID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	linkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid link ID")
	}

	if err := h.supporterService.Revoke(c.UserContext(), subjectID, linkID); err != nil {
		if errors.Is(err, services.ErrLinkNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("revoke supporter failed", "action", "revoke_supporter", "subject_id", subjectID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to revoke supporter",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "Supporter revoked"})
}

// Subjects lists the people the caller supports.
func (h *SupporterHandler) Subjects(c *fiber.Ctx) error {
	supporterID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	links, err := h.supporterService.ListSubjects(c.UserContext(), supporterID)
	if err != nil {
		slog.Error("list subjects failed", "action", "list_subjects", "supporter_id", supporterID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list subjects",
		})
	}
	return c.JSON(fiber.Map{"data": toLinkResponses(links)})
}

func toLinkResponse(link models.SupporterLink) dto.SupporterLinkResponse {
	return dto.SupporterLinkResponse{
		ID:           link.ID,
		SubjectID:    link.SubjectID,
		SupporterID:  link.SupporterID,
		Relationship: link.Relationship,
		Status:       link.Status,
		CreatedAt:    link.CreatedAt,
	}
}

func toLinkResponses(links []models.SupporterLink) []dto.SupporterLinkResponse {
	out := make([]dto.SupporterLinkResponse, len(links))
	for i, l := range links {
		out[i] = toLinkResponse(l)
	}
	return out
}
