package directory

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

func setupDirectoryTestDB(t *testing.T) *gorm.DB {
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

func strPtr(s string) *string { return &s }

func countUsers(t *testing.T, db *gorm.DB, externalID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("external_id = ?", externalID).Count(&count).Error)
	return count
}

func TestUpsertCreatesUser(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewRepository(db)

	user, err := repo.Upsert(context.Background(), UpsertInput{
		ExternalID: "ext_create_1",
		Email:      strPtr("jane@acme.test"),
		FirstName:  strPtr("Jane"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "ext_create_1", user.ExternalID)
	assert.Equal(t, "jane@acme.test", user.Email)
	require.NotNil(t, user.FirstName)
	assert.Equal(t, "Jane", *user.FirstName)
	assert.Nil(t, user.LastName)
}

func TestUpsertMergesProvidedFieldsOnly(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, UpsertInput{
		ExternalID: "ext_merge_1",
		Email:      strPtr("jane@acme.test"),
		FirstName:  strPtr("Jane"),
	})
	require.NoError(t, err)

	user, err := repo.Upsert(ctx, UpsertInput{
		ExternalID: "ext_merge_1",
		LastName:   strPtr("Doe"),
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@acme.test", user.Email, "absent email must not blank the stored one")
	require.NotNil(t, user.FirstName)
	assert.Equal(t, "Jane", *user.FirstName)
	require.NotNil(t, user.LastName)
	assert.Equal(t, "Doe", *user.LastName)
	assert.EqualValues(t, 1, countUsers(t, db, "ext_merge_1"))
}

func TestUpsertIdempotentPerEventContent(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	input := UpsertInput{
		ExternalID: "ext_idem_1",
		Email:      strPtr("jane@acme.test"),
		FirstName:  strPtr("Jane"),
		LastName:   strPtr("Doe"),
		ImageURL:   strPtr("https://img.test/jane.png"),
	}

	first, err := repo.Upsert(ctx, input)
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Email, second.Email)
	assert.Equal(t, first.FirstName, second.FirstName)
	assert.Equal(t, first.LastName, second.LastName)
	assert.Equal(t, first.ImageURL, second.ImageURL)
	assert.EqualValues(t, 1, countUsers(t, db, "ext_idem_1"))
}

func TestDeleteByExternalIDIsIdempotent(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.DeleteByExternalID(ctx, "ext_del_absent"), "deleting an absent user is a no-op")

	_, err := repo.Upsert(ctx, UpsertInput{ExternalID: "ext_del_1", Email: strPtr("a@x.test")})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByExternalID(ctx, "ext_del_1"))
	_, err = repo.FindByExternalID(ctx, "ext_del_1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.DeleteByExternalID(ctx, "ext_del_1"))
}

func TestDeleteCascadesToOwnedBusinesses(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, UpsertInput{ExternalID: "ext_cascade_1", Email: strPtr("owner@x.test")})
	require.NoError(t, err)

	business := &models.Business{
		ID:              uuid.New(),
		OwnerExternalID: "ext_cascade_1",
		Name:            "Acme",
		Website:         "https://acme.test",
		Industry:        enums.IndustryTechnology,
		Size:            enums.BusinessSizeSmall,
		Status:          enums.BusinessStatusActive,
	}
	require.NoError(t, db.Create(business).Error)

	require.NoError(t, repo.DeleteByExternalID(ctx, "ext_cascade_1"))

	var businessCount int64
	require.NoError(t, db.Model(&models.Business{}).Where("owner_external_id = ?", "ext_cascade_1").Count(&businessCount).Error)
	assert.EqualValues(t, 0, businessCount, "owned businesses must be removed with the user")
}

func TestDeleteThenCreateYieldsFreshRecord(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, UpsertInput{
		ExternalID: "ext_recreate_1",
		Email:      strPtr("old@x.test"),
		FirstName:  strPtr("Old"),
	})
	require.NoError(t, err)
	require.NoError(t, repo.DeleteByExternalID(ctx, "ext_recreate_1"))

	user, err := repo.Upsert(ctx, UpsertInput{
		ExternalID: "ext_recreate_1",
		Email:      strPtr("new@x.test"),
	})
	require.NoError(t, err)

	assert.Equal(t, "new@x.test", user.Email)
	assert.Nil(t, user.FirstName, "recreated record must not inherit deleted fields")
	assert.EqualValues(t, 1, countUsers(t, db, "ext_recreate_1"))
}

func TestTouchLastLogin(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, UpsertInput{ExternalID: "ext_login_1", Email: strPtr("a@x.test")})
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, repo.TouchLastLogin(ctx, "ext_login_1", now))

	user, err := repo.FindByExternalID(ctx, "ext_login_1")
	require.NoError(t, err)
	require.NotNil(t, user.LastLoginAt)
	assert.WithinDuration(t, now, *user.LastLoginAt, time.Second)
}
