package campaigns

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
	"github.com/admaster-ai/admaster-backend/pkg/enums"
)

// CampaignDTO exposes a campaign group in API responses.
type CampaignDTO struct {
	ID              uuid.UUID            `json:"id"`
	BusinessID      uuid.UUID            `json:"business_id"`
	OwnerExternalID string               `json:"owner_external_id"`
	Title           string               `json:"title"`
	URL             string               `json:"url"`
	ConversionGoal  enums.ConversionGoal `json:"conversion_goal"`
	BudgetCurrency  enums.Currency       `json:"budget_currency"`
	DailyBudget     decimal.Decimal      `json:"daily_budget"`
	Status          enums.CampaignStatus `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// CreateCampaignInput holds creation-time data for a new campaign group.
// Conversion goal, currency, and budget fall back to defaults when unset;
// status always starts in draft.
type CreateCampaignInput struct {
	BusinessID     uuid.UUID
	Title          string
	URL            string
	ConversionGoal enums.ConversionGoal
	BudgetCurrency enums.Currency
	DailyBudget    *decimal.Decimal
}

// FromModel maps the persisted campaign into a DTO.
func FromModel(m *models.Campaign) *CampaignDTO {
	if m == nil {
		return nil
	}
	return &CampaignDTO{
		ID:              m.ID,
		BusinessID:      m.BusinessID,
		OwnerExternalID: m.OwnerExternalID,
		Title:           m.Title,
		URL:             m.URL,
		ConversionGoal:  m.ConversionGoal,
		BudgetCurrency:  m.BudgetCurrency,
		DailyBudget:     m.DailyBudget,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

var allowedTransitions = map[enums.CampaignStatus][]enums.CampaignStatus{
	enums.CampaignStatusDraft:    {enums.CampaignStatusActive, enums.CampaignStatusArchived},
	enums.CampaignStatusActive:   {enums.CampaignStatusPaused, enums.CampaignStatusArchived},
	enums.CampaignStatusPaused:   {enums.CampaignStatusActive, enums.CampaignStatusArchived},
	enums.CampaignStatusArchived: {},
}

func canTransition(from, to enums.CampaignStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
