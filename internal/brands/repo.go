package brands

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
)

// Repository handles brand persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to brand operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByBusinessID loads the brand for a business.
func (r *Repository) FindByBusinessID(ctx context.Context, businessID uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// GetOrCreateByBusinessID returns the brand for a business, inserting an
// empty profile on first read. Losing the insert race to a concurrent first
// read collapses to the row that won.
func (r *Repository) GetOrCreateByBusinessID(ctx context.Context, businessID uuid.UUID) (*models.Brand, error) {
	brand, err := r.FindByBusinessID(ctx, businessID)
	if err == nil {
		return brand, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &models.Brand{
		ID:          uuid.New(),
		BusinessID:  businessID,
		Language:    "en",
		BrandColors: pq.StringArray{},
		ToneOfVoice: pq.StringArray{},
	}
	if createErr := r.db.WithContext(ctx).Create(fresh).Error; createErr != nil {
		if brand, err := r.FindByBusinessID(ctx, businessID); err == nil {
			return brand, nil
		}
		return nil, createErr
	}
	return fresh, nil
}

// Update saves the provided brand.
func (r *Repository) Update(ctx context.Context, brand *models.Brand) error {
	if brand == nil {
		return fmt.Errorf("brand is required")
	}
	return r.db.WithContext(ctx).Save(brand).Error
}
