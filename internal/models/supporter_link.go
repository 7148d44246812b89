package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LinkStatusActive  = "active"
	LinkStatusRevoked = "revoked"
)

// SupporterLink connects a subject to a trusted supporter.
type SupporterLink struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubjectID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_supporter_links_pair" json:"subject_id"`
	SupporterID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_supporter_links_pair;index" json:"supporter_id"`
	Relationship string         `gorm:"size:50" json:"relationship"`
	Status       string         `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Subject      User           `gorm:"foreignKey:SubjectID" json:"-"`
	Supporter    User           `gorm:"foreignKey:SupporterID" json:"-"`
}
