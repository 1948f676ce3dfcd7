package seed

import (
	"testing"

	"accesshub/internal/database"
	"accesshub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeed(t *testing.T) {
	db := openSeedTestDB(t)

	err := Seed(db, Options{NumUsers: 5, NumSoftware: 4, SkipBcrypt: true})
	require.NoError(t, err)

	var userCount, softwareCount, requestCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Software{}).Count(&softwareCount).Error)
	require.NoError(t, db.Model(&models.AccessRequest{}).Count(&requestCount).Error)

	assert.EqualValues(t, 6, userCount, "5 users plus the demo manager")
	assert.EqualValues(t, 4, softwareCount)
	assert.NotZero(t, requestCount)

	var managerCount int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleManager).Count(&managerCount).Error)
	assert.NotZero(t, managerCount)

	// At most one pending request per (user, software) pair.
	type pairCount struct {
		UserID     uint
		SoftwareID uint
		N          int64
	}
	var pairs []pairCount
	require.NoError(t, db.Model(&models.AccessRequest{}).
		Select("user_id, software_id, COUNT(*) as n").
		Where("status = ?", models.StatusPending).
		Group("user_id, software_id").
		Scan(&pairs).Error)
	for _, p := range pairs {
		assert.LessOrEqual(t, p.N, int64(1), "user %d software %d", p.UserID, p.SoftwareID)
	}
}

func TestSeed_CleanRemovesOldData(t *testing.T) {
	db := openSeedTestDB(t)

	require.NoError(t, db.Create(&models.User{Username: "stale", Password: "x", Role: models.RoleEmployee}).Error)
	require.NoError(t, Seed(db, Options{NumUsers: 1, NumSoftware: 1, ShouldClean: true, SkipBcrypt: true}))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "stale").Count(&count).Error)
	assert.Zero(t, count)
}

func TestFactory_DryRunWritesNothing(t *testing.T) {
	db := openSeedTestDB(t)
	factory := NewFactory(db, Options{DryRun: true, SkipBcrypt: true})

	user, err := factory.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID, "dry-run assigns synthetic ids")

	software, err := factory.CreateSoftware()
	require.NoError(t, err)
	_, err = factory.CreateRequest(user, software, models.TierRead, models.StatusPending)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
