// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"accesshub/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumSoftware int
	ShouldClean bool
	DryRun      bool
	SkipBcrypt  bool
	// MaxDays spreads seeded request timestamps over the past N days.
	MaxDays int
}

// Seed populates the database with demo users, a software catalog, and
// request histories. Every seeded history keeps the at-most-one-pending
// invariant a real workload would have.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d software entries...", opts.NumUsers, opts.NumSoftware)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d users created", len(users))

	// Guarantee at least one manager so the review queue is usable.
	if len(users) > 0 {
		if _, err := factory.CreateUser(func(u *models.User) {
			u.Username = "demo-manager"
			u.Role = models.RoleManager
		}); err != nil {
			return fmt.Errorf("failed to create manager: %w", err)
		}
	}

	catalog := make([]*models.Software, 0, opts.NumSoftware)
	for i := 0; i < opts.NumSoftware; i++ {
		software, err := factory.CreateSoftware()
		if err != nil {
			return fmt.Errorf("failed to create software: %w", err)
		}
		catalog = append(catalog, software)
	}
	log.Printf("✓ %d software entries created", len(catalog))

	created, err := createRequestHistories(factory, users, catalog)
	if err != nil {
		return fmt.Errorf("failed to create requests: %w", err)
	}
	log.Printf("✓ %d access requests created", created)

	log.Println("🌱 Seeding complete")
	return nil
}

// createRequestHistories gives each user a handful of requests across the
// catalog: decided history plus at most one open request per software.
func createRequestHistories(factory *Factory, users []*models.User, catalog []*models.Software) (int, error) {
	if len(catalog) == 0 {
		return 0, nil
	}

	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	tiers := []models.AccessTier{models.TierRead, models.TierWrite, models.TierAdmin}

	created := 0
	for _, user := range users {
		perm := r.Perm(len(catalog))
		numRequests := r.Intn(3) + 1
		if numRequests > len(catalog) {
			numRequests = len(catalog)
		}
		for i := 0; i < numRequests; i++ {
			software := catalog[perm[i]]
			tier := tiers[r.Intn(len(tiers))]

			status := models.StatusPending
			switch r.Intn(3) {
			case 0:
				status = models.StatusApproved
			case 1:
				status = models.StatusRejected
			}

			if _, err := factory.CreateRequest(user, software, tier, status); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func clearData(db *gorm.DB) error {
	// Order matters: requests reference users and software.
	for _, table := range []string{"requests", "software", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
