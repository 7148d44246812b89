package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the subject's stored settings. A subject who never saved any
// gets a row with every flag unset.
func (s *SettingsService) Get(ctx context.Context, subjectID uuid.UUID) (*models.VisibilitySettings, error) {
	var settings models.VisibilitySettings
	err := s.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.VisibilitySettings{SubjectID: subjectID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load visibility settings: %w", err)
	}
	return &settings, nil
}

// Update applies the non-nil flags of req and leaves the rest untouched. The
// write is a single upsert on subject_id so concurrent first updates merge.
func (s *SettingsService) Update(ctx context.Context, subjectID uuid.UUID, req *dto.UpdateVisibilityRequest) (*models.VisibilitySettings, error) {
	row := models.VisibilitySettings{SubjectID: subjectID}
	if !applyVisibility(&row, req) {
		return s.Get(ctx, subjectID)
	}

	if err := upsertVisibility(s.db.WithContext(ctx), &row, req).Error; err != nil {
		return nil, fmt.Errorf("failed to save visibility settings: %w", err)
	}
	return s.Get(ctx, subjectID)
}

// upsertVisibility inserts row or, when the subject already has settings,
// overwrites only the columns req sets.
func upsertVisibility(db *gorm.DB, row *models.VisibilitySettings, req *dto.UpdateVisibilityRequest) *gorm.DB {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject_id"}},
		DoUpdates: clause.AssignmentColumns(visibilityColumns(req)),
	}).Create(row)
}

func visibilityColumns(req *dto.UpdateVisibilityRequest) []string {
	var cols []string
	if req.ShareMoodTrends != nil {
		cols = append(cols, "share_mood_trends")
	}
	if req.ShareWellnessScore != nil {
		cols = append(cols, "share_wellness_score")
	}
	if req.ShareAlertsOnly != nil {
		cols = append(cols, "share_alerts_only")
	}
	return append(cols, "updated_at")
}

// Visibility returns the subject's consent configuration for the engine.
func (s *SettingsService) Visibility(ctx context.Context, subjectID uuid.UUID) (*analytics.VisibilityConfig, error) {
	settings, err := s.Get(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return VisibilityConfigOf(settings), nil
}

func VisibilityConfigOf(settings *models.VisibilitySettings) *analytics.VisibilityConfig {
	if settings == nil {
		return nil
	}
	return &analytics.VisibilityConfig{
		ShareMoodTrends:    settings.ShareMoodTrends,
		ShareWellnessScore: settings.ShareWellnessScore,
		ShareAlertsOnly:    settings.ShareAlertsOnly,
	}
}

// VisibilityResponseOf renders stored settings with the permissions they grant.
func VisibilityResponseOf(settings *models.VisibilitySettings) dto.VisibilityResponse {
	resp := dto.VisibilityResponse{
		ShareMoodTrends:    settings.ShareMoodTrends,
		ShareWellnessScore: settings.ShareWellnessScore,
		ShareAlertsOnly:    settings.ShareAlertsOnly,
		Effective:          analytics.NormalizePermissions(VisibilityConfigOf(settings)),
	}
	if !settings.UpdatedAt.IsZero() {
		updated := settings.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

func applyVisibility(settings *models.VisibilitySettings, req *dto.UpdateVisibilityRequest) bool {
	if req == nil {
		return false
	}
	changed := false
	if req.ShareMoodTrends != nil {
		settings.ShareMoodTrends = boolRef(*req.ShareMoodTrends)
		changed = true
	}
	if req.ShareWellnessScore != nil {
		settings.ShareWellnessScore = boolRef(*req.ShareWellnessScore)
		changed = true
	}
	if req.ShareAlertsOnly != nil {
		settings.ShareAlertsOnly = boolRef(*req.ShareAlertsOnly)
		changed = true
	}
	return changed
}

func boolRef(b bool) *bool { return &b }
