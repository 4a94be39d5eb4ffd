package campaigns

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
	"github.com/admaster-ai/admaster-backend/pkg/enums"
)

// Repository handles campaign persistence. Owner-taking lookups filter on
// the owner in the same query, so a foreign id and a missing id are the
// same row-not-found.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to campaign operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new campaign row.
func (r *Repository) Create(ctx context.Context, campaign *models.Campaign) error {
	if campaign == nil {
		return fmt.Errorf("campaign is required")
	}
	return r.db.WithContext(ctx).Create(campaign).Error
}

// FindByIDAndOwner loads a campaign by id, scoped to the owner.
func (r *Repository) FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerExternalID string) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_external_id = ?", id, ownerExternalID).
		First(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// List returns owner-scoped campaigns using cursor pagination.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Campaign, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("owner_external_id = ?", opts.ownerExternalID)

	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.Campaign
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatusFrom moves a campaign to the target status only while it still
// sits in the expected one. Zero rows affected means another writer got
// there first or the id is not the owner's.
func (r *Repository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, ownerExternalID string, from, to enums.CampaignStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ? AND owner_external_id = ? AND status = ?", id, ownerExternalID, from).
		Update("status", to)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteByIDAndOwner removes a campaign scoped to the owner and reports how
// many rows went away.
func (r *Repository) DeleteByIDAndOwner(ctx context.Context, id uuid.UUID, ownerExternalID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_external_id = ?", id, ownerExternalID).
		Delete(&models.Campaign{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
