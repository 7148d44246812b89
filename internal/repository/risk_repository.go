package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RiskRepository struct {
	db *gorm.DB
}

func NewRiskRepository(db *gorm.DB) *RiskRepository {
	return &RiskRepository{db: db}
}

// ListRecentRiskEvaluations returns at most limit evaluations, newest first.
func (r *RiskRepository) ListRecentRiskEvaluations(ctx context.Context, subjectID uuid.UUID, limit int) ([]models.RiskEvaluation, error) {
	var evals []models.RiskEvaluation
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("evaluated_at DESC").
		Limit(limit).
		Find(&evals).Error
	if err != nil {
		return nil, err
	}
	return evals, nil
}
