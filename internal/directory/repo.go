package directory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
)

// Repository exposes directory persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a directory repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// upsertUserSQL serializes concurrent writes for the same external id at the
// database. Absent (NULL) parameters never overwrite existing values, so the
// statement is safe for duplicate and out-of-order deliveries. The email
// column is NOT NULL; an absent email inserts as '' and '' never clobbers.
const upsertUserSQL = `
INSERT INTO users (id, external_id, email, first_name, last_name, image_url, last_login_at, created_at, updated_at)
VALUES (?, ?, COALESCE(?, ''), ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (external_id) DO UPDATE SET
  email         = COALESCE(NULLIF(excluded.email, ''), users.email),
  first_name    = COALESCE(excluded.first_name, users.first_name),
  last_name     = COALESCE(excluded.last_name, users.last_name),
  image_url     = COALESCE(excluded.image_url, users.image_url),
  last_login_at = COALESCE(excluded.last_login_at, users.last_login_at),
  updated_at    = CURRENT_TIMESTAMP`

// Upsert atomically creates or merges the user keyed on external id and
// returns the resulting record.
func (r *Repository) Upsert(ctx context.Context, input UpsertInput) (*models.User, error) {
	err := r.db.WithContext(ctx).Exec(
		upsertUserSQL,
		uuid.New(),
		input.ExternalID,
		input.Email,
		input.FirstName,
		input.LastName,
		input.ImageURL,
		input.LastLoginAt,
	).Error
	if err != nil {
		return nil, err
	}
	return r.FindByExternalID(ctx, input.ExternalID)
}

// FindByExternalID retrieves the user mirrored for the external identity.
func (r *Repository) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteByExternalID removes the user record; owned business rows go with it
// via the schema's cascading foreign key. Deleting an absent user is a no-op.
func (r *Repository) DeleteByExternalID(ctx context.Context, externalID string) error {
	return r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		Delete(&models.User{}).Error
}

// TouchLastLogin refreshes the user's last_login_at timestamp.
func (r *Repository) TouchLastLogin(ctx context.Context, externalID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("external_id = ?", externalID).
		UpdateColumn("last_login_at", at).Error
}
