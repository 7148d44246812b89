package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var (
	ErrNotLinked         = errors.New("supporter is not linked to this subject")
	ErrLinkNotFound      = errors.New("supporter link not found")
	ErrLinkExists        = errors.New("supporter already linked")
	ErrSelfLink          = errors.New("cannot link yourself as a supporter")
	ErrSupporterNotFound = errors.New("supporter account not found")
)

const maxRelationshipLength = 50

type SupporterService struct {
	db     *gorm.DB
	policy *bluemonday.Policy
}

func NewSupporterService(db *gorm.DB) *SupporterService {
	return &SupporterService{db: db, policy: bluemonday.StrictPolicy()}
}

// Link makes supporterID a supporter of subjectID. A previously revoked link
// is reactivated.
func (s *SupporterService) Link(ctx context.Context, subjectID, supporterID uuid.UUID, relationship string) (*models.SupporterLink, error) {
	if subjectID == supporterID {
		return nil, ErrSelfLink
	}
	if supporterID == uuid.Nil {
		return nil, ErrSupporterNotFound
	}
	relationship = s.cleanRelationship(relationship)

	db := s.db.WithContext(ctx)

	var supporter models.User
	if err := db.Select("id").First(&supporter, "id = ?", supporterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupporterNotFound
		}
		return nil, fmt.Errorf("failed to load supporter: %w", err)
	}

	var link models.SupporterLink
	err := db.Unscoped().
		Where("subject_id = ? AND supporter_id = ?", subjectID, supporterID).
		First(&link).Error
	switch {
	case err == nil:
		if link.Status == models.LinkStatusActive && !link.DeletedAt.Valid {
			return nil, ErrLinkExists
		}
		err = db.Unscoped().Model(&link).Updates(map[string]interface{}{
			"status":       models.LinkStatusActive,
			"relationship": relationship,
			"deleted_at":   nil,
		}).Error
		if err != nil {
			return nil, fmt.Errorf("failed to reactivate link: %w", err)
		}
		link.Status = models.LinkStatusActive
		link.Relationship = relationship
		link.DeletedAt = gorm.DeletedAt{}
		return &link, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		link = models.SupporterLink{
			SubjectID:    subjectID,
			SupporterID:  supporterID,
			Relationship: relationship,
			Status:       models.LinkStatusActive,
		}
		if err := db.Create(&link).Error; err != nil {
			return nil, fmt.Errorf("failed to create link: %w", err)
		}
		return &link, nil
	default:
		return nil, fmt.Errorf("failed to look up link: %w", err)
	}
}

// List returns the subject's active supporters in link order.
func (s *SupporterService) List(ctx context.Context, subjectID uuid.UUID) ([]models.SupporterLink, error) {
	var links []models.SupporterLink
	err := s.db.WithContext(ctx).
		Where("subject_id = ? AND status = ?", subjectID, models.LinkStatusActive).
		Order("created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// Revoke deactivates one of the subject's links.
func (s *SupporterService) Revoke(ctx context.Context, subjectID, linkID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&models.SupporterLink{}).
		Where("id = ? AND subject_id = ? AND status = ?", linkID, subjectID, models.LinkStatusActive).
		Update("status", models.LinkStatusRevoked)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// ListSubjects returns the active links where supporterID is the supporter,
// in link creation order.
func (s *SupporterService) ListSubjects(ctx context.Context, supporterID uuid.UUID) ([]models.SupporterLink, error) {
	var links []models.SupporterLink
	err := s.db.WithContext(ctx).
		Where("supporter_id = ? AND status = ?", supporterID, models.LinkStatusActive).
		Order("created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (s *SupporterService) IsLinked(ctx context.Context, subjectID, supporterID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.SupporterLink{}).
		Where("subject_id = ? AND supporter_id = ? AND status = ?", subjectID, supporterID, models.LinkStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SupporterService) cleanRelationship(raw string) string {
	clean := strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(raw)))
	if utf8.RuneCountInString(clean) > maxRelationshipLength {
		clean = string([]rune(clean)[:maxRelationshipLength])
	}
	return clean
}
