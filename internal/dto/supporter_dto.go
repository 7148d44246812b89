package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/analytics"
	"github.com/google/uuid"
)

type LinkSupporterRequest struct {
	SupporterID  uuid.UUID `json:"supporter_id"`
	Relationship string    `json:"relationship"`
}

type SupporterLinkResponse struct {
	ID           uuid.UUID `json:"id"`
	SubjectID    uuid.UUID `json:"subject_id"`
	SupporterID  uuid.UUID `json:"supporter_id"`
	Relationship string    `json:"relationship"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type UpdateVisibilityRequest struct {
	ShareMoodTrends    *bool `json:"share_mood_trends"`
	ShareWellnessScore *bool `json:"share_wellness_score"`
	ShareAlertsOnly    *bool `json:"share_alerts_only"`
}

// VisibilityResponse echoes the stored flags and the permissions they grant.
type VisibilityResponse struct {
	ShareMoodTrends    *bool                   `json:"share_mood_trends"`
	ShareWellnessScore *bool                   `json:"share_wellness_score"`
	ShareAlertsOnly    *bool                   `json:"share_alerts_only"`
	Effective          analytics.PermissionSet `json:"effective"`
	UpdatedAt          *time.Time              `json:"updated_at"`
}

