package brands

import (
	"time"

	"github.com/google/uuid"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
)

// BrandDTO exposes a business's marketing profile in API responses.
type BrandDTO struct {
	ID          uuid.UUID `json:"id"`
	BusinessID  uuid.UUID `json:"business_id"`
	Description string    `json:"description"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	BrandColors []string  `json:"brand_colors"`
	ToneOfVoice []string  `json:"tone_of_voice"`
	Language    string    `json:"language"`
	IsComplete  bool      `json:"is_complete"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateBrandInput captures the allowed brand fields for mutation. Nil
// fields are left untouched.
type UpdateBrandInput struct {
	Description *string
	LogoURL     *string
	BrandColors *[]string
	ToneOfVoice *[]string
	Language    *string
	IsComplete  *bool
}

// FromModel maps the persisted brand into a DTO. Array fields come back as
// empty slices, never null.
func FromModel(m *models.Brand) *BrandDTO {
	if m == nil {
		return nil
	}

	colors := []string(m.BrandColors)
	if colors == nil {
		colors = []string{}
	}
	tone := []string(m.ToneOfVoice)
	if tone == nil {
		tone = []string{}
	}

	return &BrandDTO{
		ID:          m.ID,
		BusinessID:  m.BusinessID,
		Description: m.Description,
		LogoURL:     m.LogoURL,
		BrandColors: colors,
		ToneOfVoice: tone,
		Language:    m.Language,
		IsComplete:  m.IsComplete,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
