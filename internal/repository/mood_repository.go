package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MoodRepository reads mood entries from PostgreSQL.
type MoodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) *MoodRepository {
	return &MoodRepository{db: db}
}

// ListMoodEntries returns a subject's entries recorded within [since, until],
// oldest first.
func (r *MoodRepository) ListMoodEntries(ctx context.Context, subjectID uuid.UUID, since, until time.Time) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	err := r.db.WithContext(ctx).
		Where("subject_id = ? AND recorded_at >= ? AND recorded_at <= ?", subjectID, since, until).
		Order("recorded_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
