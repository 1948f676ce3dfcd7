package database

import (
	"testing"

	"accesshub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "software", "requests"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestMigrate_UsernameUnique(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	require.NoError(t, db.Create(&models.User{Username: "alice", Password: "x", Role: models.RoleEmployee}).Error)
	err := db.Create(&models.User{Username: "alice", Password: "y", Role: models.RoleEmployee}).Error
	assert.Error(t, err)
}

func TestEnsurePendingUniqueIndex_SkipsNonPostgres(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(PersistentModels()...))
	assert.NoError(t, EnsurePendingUniqueIndex(db))
}
