package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors one identity-provider principal locally. ExternalID is the
// provider's stable principal id and the only join key between the provider
// and local storage; it is never reused or reassigned. Owned businesses are
// recomputed by query against businesses.owner_external_id, never cached on
// the row.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ExternalID  string     `gorm:"column:external_id;type:text;not null;uniqueIndex"`
	Email       string     `gorm:"type:text;not null"`
	FirstName   *string    `gorm:"column:first_name"`
	LastName    *string    `gorm:"column:last_name"`
	ImageURL    *string    `gorm:"column:image_url"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
