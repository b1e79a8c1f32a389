package dealer_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"roadsuite_backend/internal/car"
	"roadsuite_backend/internal/category"
	"roadsuite_backend/internal/common"
	"roadsuite_backend/internal/dealer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type dealerRepoFixture struct {
	db       *gorm.DB
	repo     dealer.Repository
	category category.Category
}

func setupDealerRepoTest(t *testing.T) *dealerRepoFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&category.Category{},
		&dealer.Profile{},
		&car.Car{},
	), "Failed to migrate test schema")

	f := &dealerRepoFixture{db: db, repo: dealer.NewGORMRepository(db)}

	f.category = category.Category{Name: "SUV", Slug: "suv"}
	require.NoError(t, db.Create(&f.category).Error)

	return f
}

func (f *dealerRepoFixture) createProfile(t *testing.T, displayName string) dealer.Profile {
	t.Helper()
	email := fmt.Sprintf("%s@example.com", uuid.New())
	p := dealer.Profile{UserID: uuid.New(), DisplayName: displayName, ContactEmail: &email}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *dealerRepoFixture) createCar(t *testing.T, profileID uuid.UUID) car.Car {
	t.Helper()
	c := car.Car{
		Make:            "Kia",
		Model:           "Sportage",
		Year:            2023,
		Price:           31000,
		CategoryID:      f.category.ID,
		DealerProfileID: &profileID,
		Status:          car.StatusApproved,
		CreatedUtc:      time.Now().UTC(),
	}
	require.NoError(t, f.db.Create(&c).Error)
	return c
}

func TestRepository_Delete_OrphansReferencingCars(t *testing.T) {
	f := setupDealerRepoTest(t)
	ctx := context.Background()

	doomed := f.createProfile(t, "Closing Motors")
	survivor := f.createProfile(t, "Other Motors")

	orphaned := f.createCar(t, doomed.ID)
	kept := f.createCar(t, survivor.ID)

	require.NoError(t, f.repo.Delete(ctx, doomed.ID))

	_, err := f.repo.FindByID(ctx, doomed.ID)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.Code, apiErr.Code)

	var orphanedRow car.Car
	require.NoError(t, f.db.First(&orphanedRow, "id = ?", orphaned.ID).Error)
	assert.Nil(t, orphanedRow.DealerProfileID)

	var keptRow car.Car
	require.NoError(t, f.db.First(&keptRow, "id = ?", kept.ID).Error)
	require.NotNil(t, keptRow.DealerProfileID)
	assert.Equal(t, survivor.ID, *keptRow.DealerProfileID)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	f := setupDealerRepoTest(t)

	err := f.repo.Delete(context.Background(), uuid.New())
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.Code, apiErr.Code)
}
