package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/admaster-ai/admaster-backend/pkg/enums"
)

// Business is one marketing entity owned by exactly one user. The owner
// column is immutable after creation; there is no transfer of ownership.
type Business struct {
	ID              uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerExternalID string               `gorm:"column:owner_external_id;type:text;not null;index"`
	Name            string               `gorm:"column:name;type:text;not null"`
	Website         string               `gorm:"column:website;type:text;not null"`
	Industry        enums.Industry       `gorm:"column:industry;type:text;not null"`
	Size            enums.BusinessSize   `gorm:"column:size;type:business_size;not null;default:'small'"`
	Status          enums.BusinessStatus `gorm:"column:status;type:business_status;not null;default:'active'"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
