package campaigns

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
	"github.com/admaster-ai/admaster-backend/pkg/enums"
	pkgpagination "github.com/admaster-ai/admaster-backend/pkg/pagination"
)

func setupCampaignTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  external_id TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL,
  first_name TEXT,
  last_name TEXT,
  image_url TEXT,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	businesses := `
CREATE TABLE IF NOT EXISTS businesses (
  id TEXT PRIMARY KEY,
  owner_external_id TEXT NOT NULL REFERENCES users(external_id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  website TEXT NOT NULL DEFAULT '',
  industry TEXT NOT NULL DEFAULT 'Other',
  size TEXT NOT NULL DEFAULT 'small',
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME,
  updated_at DATETIME
);`
	campaigns := `
CREATE TABLE IF NOT EXISTS campaigns (
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
  owner_external_id TEXT NOT NULL,
  title TEXT NOT NULL,
  url TEXT NOT NULL,
  conversion_goal TEXT NOT NULL,
  budget_currency TEXT NOT NULL,
  daily_budget NUMERIC NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'draft',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(users).Error)
	require.NoError(t, db.Exec(businesses).Error)
	require.NoError(t, db.Exec(campaigns).Error)
	return db
}

func seedCampaignBusiness(t *testing.T, db *gorm.DB, owner string) *models.Business {
	t.Helper()

	user := &models.User{ID: uuid.New(), ExternalID: owner, Email: owner + "@owner.test"}
	require.NoError(t, db.Create(user).Error)

	business := &models.Business{
		ID:              uuid.New(),
		OwnerExternalID: owner,
		Name:            "Acme",
		Website:         "https://acme.test",
		Industry:        enums.IndustryTechnology,
		Size:            enums.BusinessSizeSmall,
		Status:          enums.BusinessStatusActive,
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, db.Create(business).Error)
	return business
}

func seedCampaign(t *testing.T, db *gorm.DB, business *models.Business, title string, status enums.CampaignStatus, createdAt time.Time) *models.Campaign {
	t.Helper()
	campaign := &models.Campaign{
		ID:              uuid.New(),
		BusinessID:      business.ID,
		OwnerExternalID: business.OwnerExternalID,
		Title:           title,
		URL:             "https://acme.test/landing",
		ConversionGoal:  enums.ConversionGoalWebsiteTraffic,
		BudgetCurrency:  enums.CurrencyINR,
		DailyBudget:     decimal.RequireFromString("150.50"),
		Status:          status,
		CreatedAt:       createdAt,
	}
	require.NoError(t, db.Create(campaign).Error)
	return campaign
}

func TestCampaignCreateAndFindScopedToOwner(t *testing.T) {
	db := setupCampaignTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	business := seedCampaignBusiness(t, db, "cmp_owner_1")

	campaign := seedCampaign(t, db, business, "Summer launch", enums.CampaignStatusDraft, time.Now().UTC())

	found, err := repo.FindByIDAndOwner(ctx, campaign.ID, "cmp_owner_1")
	require.NoError(t, err)
	assert.Equal(t, "Summer launch", found.Title)
	assert.True(t, found.DailyBudget.Equal(decimal.RequireFromString("150.50")), "budget mismatch: %s", found.DailyBudget)
	assert.Equal(t, enums.CurrencyINR, found.BudgetCurrency)

	_, err = repo.FindByIDAndOwner(ctx, campaign.ID, "cmp_owner_other")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "foreign owner must see the same not-found as a missing id")
}

func TestCampaignListPaginatesNewestFirst(t *testing.T) {
	db := setupCampaignTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	business := seedCampaignBusiness(t, db, "cmp_owner_page")

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedCampaign(t, db, business, fmt.Sprintf("c%d", i), enums.CampaignStatusDraft, base.Add(time.Duration(i)*time.Minute))
	}

	page1, err := repo.List(ctx, listQuery{ownerExternalID: "cmp_owner_page", limit: 3})
	require.NoError(t, err)
	require.Len(t, page1, 3)
	assert.Equal(t, "c4", page1[0].Title)
	assert.Equal(t, "c2", page1[2].Title)

	cursor := &pkgpagination.Cursor{CreatedAt: page1[2].CreatedAt, ID: page1[2].ID}
	page2, err := repo.List(ctx, listQuery{ownerExternalID: "cmp_owner_page", limit: 3, cursor: cursor})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "c1", page2[0].Title)
	assert.Equal(t, "c0", page2[1].Title)
}

func TestCampaignUpdateStatusFromIsConditional(t *testing.T) {
	db := setupCampaignTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	business := seedCampaignBusiness(t, db, "cmp_owner_status")

	campaign := seedCampaign(t, db, business, "Launch", enums.CampaignStatusDraft, time.Now().UTC())

	affected, err := repo.UpdateStatusFrom(ctx, campaign.ID, "cmp_owner_status", enums.CampaignStatusPaused, enums.CampaignStatusActive)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected, "stale expected status must not update")

	affected, err = repo.UpdateStatusFrom(ctx, campaign.ID, "cmp_owner_status", enums.CampaignStatusDraft, enums.CampaignStatusActive)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	found, err := repo.FindByIDAndOwner(ctx, campaign.ID, "cmp_owner_status")
	require.NoError(t, err)
	assert.Equal(t, enums.CampaignStatusActive, found.Status)

	affected, err = repo.UpdateStatusFrom(ctx, campaign.ID, "cmp_owner_other", enums.CampaignStatusActive, enums.CampaignStatusPaused)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected, "foreign owner must not update the row")
}

func TestCampaignDeleteScopedToOwner(t *testing.T) {
	db := setupCampaignTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	business := seedCampaignBusiness(t, db, "cmp_owner_del")

	campaign := seedCampaign(t, db, business, "Doomed", enums.CampaignStatusDraft, time.Now().UTC())

	affected, err := repo.DeleteByIDAndOwner(ctx, campaign.ID, "cmp_owner_other")
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	affected, err = repo.DeleteByIDAndOwner(ctx, campaign.ID, "cmp_owner_del")
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	_, err = repo.FindByIDAndOwner(ctx, campaign.ID, "cmp_owner_del")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBusinessDeleteCascadesToCampaigns(t *testing.T) {
	db := setupCampaignTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	business := seedCampaignBusiness(t, db, "cmp_owner_cascade")

	campaign := seedCampaign(t, db, business, "Orphaned", enums.CampaignStatusActive, time.Now().UTC())

	require.NoError(t, db.Where("id = ?", business.ID).Delete(&models.Business{}).Error)

	_, err := repo.FindByIDAndOwner(ctx, campaign.ID, "cmp_owner_cascade")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "campaigns must be removed with their business")
}
