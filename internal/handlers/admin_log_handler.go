package handlers

import (
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 200
)

type AdminLogHandler struct {
	db *gorm.DB
}

func NewAdminLogHandler(db *gorm.DB) *AdminLogHandler {
	return &AdminLogHandler{db: db}
}

// ListLogs returns persisted error logs, newest first.
// Filters: level, action, subject_id, since (RFC3339), limit, offset.
func (h *AdminLogHandler) ListLogs(c *fiber.Ctx) error {
	filter, err := parseLogFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query := h.db.WithContext(c.UserContext()).Model(&models.SystemLog{})
	if filter.level != "" {
		query = query.Where("level = ?", filter.level)
	}
	if filter.action != "" {
		query = query.Where("action = ?", filter.action)
	}
	if filter.subjectID != "" {
		query = query.Where("subject_id = ?", filter.subjectID)
	}
	if !filter.since.IsZero() {
		query = query.Where("timestamp >= ?", filter.since)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to count logs",
		})
	}

	var logs []models.SystemLog
	if err := query.Order("timestamp DESC").Limit(filter.limit).Offset(filter.offset).Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch logs",
		})
	}

	return c.JSON(dto.SystemLogListResponse{
		Logs:   logs,
		Total:  total,
		Limit:  filter.limit,
		Offset: filter.offset,
	})
}

type logFilter struct {
	level     string
	action    string
	subjectID string
	since     time.Time
	limit     int
	offset    int
}

func parseLogFilter(c *fiber.Ctx) (logFilter, error) {
	f := logFilter{
		level:  strings.ToUpper(strings.TrimSpace(c.Query("level"))),
		action: strings.TrimSpace(c.Query("action")),
		limit:  c.QueryInt("limit", defaultLogLimit),
		offset: c.QueryInt("offset", 0),
	}

	if f.limit <= 0 || f.limit > maxLogLimit {
		f.limit = defaultLogLimit
	}
	if f.offset < 0 {
		f.offset = 0
	}

	if raw := c.Query("subject_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "Invalid subject_id")
		}
		f.subjectID = id.String()
	}

	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "Invalid since, expected RFC3339")
		}
		f.since = t
	}
	return f, nil
}
