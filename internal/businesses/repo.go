package businesses

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
	"github.com/admaster-ai/admaster-backend/pkg/enums"
)

// Repository handles business persistence. Every lookup that takes an owner
// filters on it in the same query, so a foreign id and a missing id are the
// same row-not-found.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to business operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new business row.
func (r *Repository) Create(ctx context.Context, business *models.Business) error {
	if business == nil {
		return fmt.Errorf("business is required")
	}
	return r.db.WithContext(ctx).Create(business).Error
}

// FindByIDAndOwner loads a business by id, scoped to the owner.
func (r *Repository) FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerExternalID string) (*models.Business, error) {
	var business models.Business
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_external_id = ?", id, ownerExternalID).
		First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// ListByOwner returns the owner's businesses newest first, optionally
// narrowed to one status.
func (r *Repository) ListByOwner(ctx context.Context, ownerExternalID string, status *enums.BusinessStatus) ([]models.Business, error) {
	query := r.db.WithContext(ctx).
		Where("owner_external_id = ?", ownerExternalID).
		Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var businesses []models.Business
	if err := query.Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

// CountByOwner counts every business the owner has, regardless of status.
func (r *Repository) CountByOwner(ctx context.Context, ownerExternalID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Business{}).
		Where("owner_external_id = ?", ownerExternalID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update saves the provided business.
func (r *Repository) Update(ctx context.Context, business *models.Business) error {
	if business == nil {
		return fmt.Errorf("business is required")
	}
	return r.db.WithContext(ctx).Save(business).Error
}

// DeleteByIDAndOwner removes a business scoped to the owner and reports how
// many rows went away. Zero means the id does not exist for this owner.
func (r *Repository) DeleteByIDAndOwner(ctx context.Context, id uuid.UUID, ownerExternalID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_external_id = ?", id, ownerExternalID).
		Delete(&models.Business{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
