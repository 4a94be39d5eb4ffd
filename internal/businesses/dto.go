package businesses

import (
	"time"

	"github.com/google/uuid"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
	"github.com/admaster-ai/admaster-backend/pkg/enums"
)

// BusinessDTO exposes a business in API responses.
type BusinessDTO struct {
	ID              uuid.UUID            `json:"id"`
	OwnerExternalID string               `json:"owner_external_id"`
	Name            string               `json:"name"`
	Website         string               `json:"website"`
	Industry        enums.Industry       `json:"industry"`
	Size            enums.BusinessSize   `json:"size"`
	Status          enums.BusinessStatus `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// CreateBusinessInput holds creation-time data for a new business. Size
// defaults to small when unset; status always starts active.
type CreateBusinessInput struct {
	Name     string
	Website  string
	Industry enums.Industry
	Size     enums.BusinessSize
}

func (in CreateBusinessInput) toModel(ownerExternalID string) *models.Business {
	size := in.Size
	if size == "" {
		size = enums.BusinessSizeSmall
	}
	return &models.Business{
		ID:              uuid.New(),
		OwnerExternalID: ownerExternalID,
		Name:            in.Name,
		Website:         in.Website,
		Industry:        in.Industry,
		Size:            size,
		Status:          enums.BusinessStatusActive,
	}
}

// UpdateBusinessInput captures the allowed business fields for mutation.
// Nil fields are left untouched; the owner column never changes.
type UpdateBusinessInput struct {
	Name     *string
	Website  *string
	Industry *enums.Industry
	Size     *enums.BusinessSize
	Status   *enums.BusinessStatus
}

// ListParams narrows a business listing.
type ListParams struct {
	Status *enums.BusinessStatus
}

// ListResult is the payload for business listings.
type ListResult struct {
	Businesses []BusinessDTO `json:"businesses"`
	Total      int           `json:"total"`
}

// OwnershipCheckDTO answers the onboarding redirect check.
type OwnershipCheckDTO struct {
	HasBusiness   bool  `json:"has_business"`
	BusinessCount int64 `json:"business_count"`
}

// FromModel maps the persisted business into a DTO.
func FromModel(m *models.Business) *BusinessDTO {
	if m == nil {
		return nil
	}
	return &BusinessDTO{
		ID:              m.ID,
		OwnerExternalID: m.OwnerExternalID,
		Name:            m.Name,
		Website:         m.Website,
		Industry:        m.Industry,
		Size:            m.Size,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
