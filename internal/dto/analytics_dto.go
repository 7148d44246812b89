package dto

import (
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/analytics"
	"github.com/google/uuid"
)

// SubjectSnapshot is one entry of a supporter's overview.
type SubjectSnapshot struct {
	SubjectID    uuid.UUID           `json:"subject_id"`
	Relationship string              `json:"relationship"`
	Snapshot     *analytics.Snapshot `json:"snapshot"`
}

type OverviewResponse struct {
	Window   string            `json:"window"`
	Subjects []SubjectSnapshot `json:"subjects"`
}
