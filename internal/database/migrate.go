package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate applies the schema for all persistent models and the
// database-level constraints that AutoMigrate cannot express.
// It works on both postgres and the sqlite databases used in tests.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return EnsurePendingUniqueIndex(db)
}

// EnsurePendingUniqueIndex creates a partial unique index guaranteeing at
// most one pending request per (user, software) pair. Only created on
// postgres; the sqlite databases used in tests rely on the repository's
// transactional re-check instead.
func EnsurePendingUniqueIndex(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_requests_pending_unique
		 ON requests (user_id, software_id)
		 WHERE status = 'Pending'`,
	).Error
	if err != nil {
		return fmt.Errorf("create pending unique index: %w", err)
	}
	return nil
}
