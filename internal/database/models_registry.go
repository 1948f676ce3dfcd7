package database

import "accesshub/internal/models"

// PersistentModels returns every model that participates in schema
// migration, in dependency order (referenced tables first).
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Software{},
		&models.AccessRequest{},
	}
}
