package models

import (
	"time"

	"github.com/google/uuid"
)

// VisibilitySettings holds a subject's consent flags for linked supporters.
// A nil flag has never been set and takes its default.
type VisibilitySettings struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubjectID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"subject_id"`
	ShareMoodTrends    *bool     `json:"share_mood_trends"`
	ShareWellnessScore *bool     `json:"share_wellness_score"`
	ShareAlertsOnly    *bool     `json:"share_alerts_only"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (VisibilitySettings) TableName() string {
	return "visibility_settings"
}
