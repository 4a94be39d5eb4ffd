package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/admaster-ai/admaster-backend/pkg/enums"
)

// Campaign is an ad campaign group under a business. The owner column is
// denormalized from the business so owner-scoped listings stay one query.
type Campaign struct {
	ID              uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID      uuid.UUID            `gorm:"column:business_id;type:uuid;not null;index"`
	OwnerExternalID string               `gorm:"column:owner_external_id;type:text;not null;index"`
	Title           string               `gorm:"column:title;type:text;not null"`
	URL             string               `gorm:"column:url;type:text;not null"`
	ConversionGoal  enums.ConversionGoal `gorm:"column:conversion_goal;type:conversion_goal;not null"`
	BudgetCurrency  enums.Currency       `gorm:"column:budget_currency;type:char(3);not null"`
	DailyBudget     decimal.Decimal      `gorm:"column:daily_budget;type:numeric(12,2);not null"`
	Status          enums.CampaignStatus `gorm:"column:status;type:campaign_status;not null;default:'draft'"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
