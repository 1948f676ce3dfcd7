package seed

import (
	"errors"
	"fmt"
	"os"

	"accesshub/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// CatalogEntry is one software definition in a YAML catalog file:
//
//	- name: Jira
//	  description: Issue tracking
//	  access_levels: [Read, Write]
type CatalogEntry struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	AccessLevels []string `yaml:"access_levels"`
}

// LoadCatalog parses a YAML software catalog file.
func LoadCatalog(path string) ([]CatalogEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var entries []CatalogEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return entries, nil
}

// SeedCatalog upserts catalog entries by name, so re-running against an
// existing database is safe. Entries with unknown tier labels are rejected
// before anything is written.
func SeedCatalog(db *gorm.DB, entries []CatalogEntry) (int, error) {
	prepared := make([]models.Software, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			return 0, fmt.Errorf("catalog entry with empty name")
		}
		levels := models.DefaultTiers()
		if entry.AccessLevels != nil {
			levels = make(models.TierList, 0, len(entry.AccessLevels))
			for _, raw := range entry.AccessLevels {
				tier, ok := models.ParseAccessTier(raw)
				if !ok {
					return 0, fmt.Errorf("catalog entry %q: unknown access level %q", entry.Name, raw)
				}
				levels = append(levels, tier)
			}
		}
		prepared = append(prepared, models.Software{
			Name:         entry.Name,
			Description:  entry.Description,
			AccessLevels: levels,
		})
	}

	created := 0
	for i := range prepared {
		var existing models.Software
		err := db.Where("name = ?", prepared[i].Name).First(&existing).Error
		switch {
		case err == nil:
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return created, err
		}
		if err := db.Create(&prepared[i]).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
