package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Brand holds the marketing profile for a business, exactly one per
// business. It is created empty on first read and filled in by the owner.
type Brand struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID  uuid.UUID      `gorm:"column:business_id;type:uuid;not null;uniqueIndex"`
	Description string         `gorm:"column:description;type:text;not null;default:''"`
	LogoURL     *string        `gorm:"column:logo_url"`
	BrandColors pq.StringArray `gorm:"column:brand_colors;type:text[];default:ARRAY[]::text[]"`
	ToneOfVoice pq.StringArray `gorm:"column:tone_of_voice;type:text[];default:ARRAY[]::text[]"`
	Language    string         `gorm:"column:language;type:text;not null;default:'en'"`
	IsComplete  bool           `gorm:"column:is_complete;not null;default:false"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
