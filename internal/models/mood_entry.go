package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Canonical mood labels offered by the mood-logging flow.
const (
	MoodHappy   = "Happy"
	MoodNeutral = "Neutral"
	MoodSad     = "Sad"
	MoodAngry   = "Angry"
	MoodTired   = "Tired"
)

// MoodEntry is one self-reported emotional check-in. Entries are written by the
// mood-logging flow and are read-only here.
type MoodEntry struct {
	ID         uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubjectID  uuid.UUID                   `gorm:"type:uuid;not null;index:idx_mood_entries_subject_recorded,priority:1" json:"subject_id"`
	Mood       string                      `gorm:"size:32;not null" json:"mood"`
	Factors    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"factors"`
	Note       string                      `gorm:"type:text" json:"note,omitempty"`
	RecordedAt time.Time                   `gorm:"not null;index:idx_mood_entries_subject_recorded,priority:2" json:"recorded_at"`
	CreatedAt  time.Time                   `json:"created_at"`
}
