package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RiskEvaluation is one periodic AI-derived risk assessment for a subject.
type RiskEvaluation struct {
	ID            uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubjectID     uuid.UUID                   `gorm:"type:uuid;not null;index:idx_risk_evaluations_subject_evaluated,priority:1" json:"subject_id"`
	RiskLevel     string                      `gorm:"size:20;not null" json:"risk_level"`
	WellnessIndex int                         `gorm:"not null;default:0" json:"wellness_index"`
	Suggestions   datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"suggestions"`
	EvaluatedAt   time.Time                   `gorm:"not null;index:idx_risk_evaluations_subject_evaluated,priority:2" json:"evaluated_at"`
	CreatedAt     time.Time                   `json:"created_at"`
}
