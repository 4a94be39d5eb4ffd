package businesses

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
	"github.com/admaster-ai/admaster-backend/pkg/enums"
)

func setupBusinessTestDB(t *testing.T) *gorm.DB {
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
	require.NoError(t, db.Exec(users).Error)
	require.NoError(t, db.Exec(businesses).Error)
	return db
}

func seedOwner(t *testing.T, db *gorm.DB, externalID string) {
	t.Helper()
	user := &models.User{
		ID:         uuid.New(),
		ExternalID: externalID,
		Email:      externalID + "@owner.test",
	}
	require.NoError(t, db.Create(user).Error)
}

func seedBusiness(t *testing.T, db *gorm.DB, owner, name string, status enums.BusinessStatus, createdAt time.Time) *models.Business {
	t.Helper()
	business := &models.Business{
		ID:              uuid.New(),
		OwnerExternalID: owner,
		Name:            name,
		Website:         "https://" + name + ".test",
		Industry:        enums.IndustryTechnology,
		Size:            enums.BusinessSizeSmall,
		Status:          status,
		CreatedAt:       createdAt,
	}
	require.NoError(t, db.Create(business).Error)
	return business
}

func TestCreateAndFindScopedToOwner(t *testing.T) {
	db := setupBusinessTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	seedOwner(t, db, "biz_owner_1")

	business := CreateBusinessInput{
		Name:     "Corider",
		Website:  "https://corider.test",
		Industry: enums.IndustryTechnology,
	}.toModel("biz_owner_1")
	require.NoError(t, repo.Create(ctx, business))

	found, err := repo.FindByIDAndOwner(ctx, business.ID, "biz_owner_1")
	require.NoError(t, err)
	assert.Equal(t, "Corider", found.Name)
	assert.Equal(t, enums.BusinessSizeSmall, found.Size, "size defaults to small")
	assert.Equal(t, enums.BusinessStatusActive, found.Status)

	_, err = repo.FindByIDAndOwner(ctx, business.ID, "biz_owner_other")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "foreign owner must see the same not-found as a missing id")

	_, err = repo.FindByIDAndOwner(ctx, uuid.New(), "biz_owner_1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListByOwnerNewestFirstWithStatusFilter(t *testing.T) {
	db := setupBusinessTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	seedOwner(t, db, "biz_owner_list")
	seedOwner(t, db, "biz_owner_empty")

	base := time.Now().UTC().Add(-time.Hour)
	seedBusiness(t, db, "biz_owner_list", "oldest", enums.BusinessStatusActive, base)
	seedBusiness(t, db, "biz_owner_list", "middle", enums.BusinessStatusArchived, base.Add(time.Minute))
	seedBusiness(t, db, "biz_owner_list", "newest", enums.BusinessStatusActive, base.Add(2*time.Minute))

	all, err := repo.ListByOwner(ctx, "biz_owner_list", nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "newest", all[0].Name)
	assert.Equal(t, "middle", all[1].Name)
	assert.Equal(t, "oldest", all[2].Name)

	archived := enums.BusinessStatusArchived
	filtered, err := repo.ListByOwner(ctx, "biz_owner_list", &archived)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "middle", filtered[0].Name)

	none, err := repo.ListByOwner(ctx, "biz_owner_empty", nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCountByOwner(t *testing.T) {
	db := setupBusinessTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	seedOwner(t, db, "biz_owner_count")

	count, err := repo.CountByOwner(ctx, "biz_owner_count")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	now := time.Now().UTC()
	seedBusiness(t, db, "biz_owner_count", "first", enums.BusinessStatusActive, now)
	seedBusiness(t, db, "biz_owner_count", "second", enums.BusinessStatusInactive, now)

	count, err = repo.CountByOwner(ctx, "biz_owner_count")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestUpdatePersistsChanges(t *testing.T) {
	db := setupBusinessTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	seedOwner(t, db, "biz_owner_update")

	business := seedBusiness(t, db, "biz_owner_update", "before", enums.BusinessStatusActive, time.Now().UTC())

	business.Name = "after"
	business.Status = enums.BusinessStatusArchived
	require.NoError(t, repo.Update(ctx, business))

	found, err := repo.FindByIDAndOwner(ctx, business.ID, "biz_owner_update")
	require.NoError(t, err)
	assert.Equal(t, "after", found.Name)
	assert.Equal(t, enums.BusinessStatusArchived, found.Status)
	assert.Equal(t, "biz_owner_update", found.OwnerExternalID)
}

func TestDeleteByIDAndOwnerScopesToOwner(t *testing.T) {
	db := setupBusinessTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	seedOwner(t, db, "biz_owner_del")

	business := seedBusiness(t, db, "biz_owner_del", "doomed", enums.BusinessStatusActive, time.Now().UTC())

	affected, err := repo.DeleteByIDAndOwner(ctx, business.ID, "biz_owner_other")
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected, "foreign owner must not delete the row")

	_, err = repo.FindByIDAndOwner(ctx, business.ID, "biz_owner_del")
	require.NoError(t, err, "row must survive the foreign delete attempt")

	affected, err = repo.DeleteByIDAndOwner(ctx, business.ID, "biz_owner_del")
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	affected, err = repo.DeleteByIDAndOwner(ctx, business.ID, "biz_owner_del")
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected, "second delete is a no-op")
}
