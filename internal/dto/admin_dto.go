package dto

import "github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"

type SystemLogListResponse struct {
	Logs   []models.SystemLog `json:"logs"`
	Total  int64              `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
