// Command main runs the database seeder for AccessHub.
package main

import (
	"flag"
	"log"

	"accesshub/internal/config"
	"accesshub/internal/database"
	"accesshub/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 25, "Number of users to create")
	numSoftware := flag.Int("software", 12, "Number of software entries to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	maxDays := flag.Int("max-days", 30, "Spread request timestamps over the past N days")
	catalog := flag.String("catalog", "", "Path to a software catalog YAML to seed as well")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d software entries, clean=%v dry-run=%v\n", *numUsers, *numSoftware, *shouldClean, *dryRun)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	_, err = database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(database.DB, seed.Options{
		NumUsers:    *numUsers,
		NumSoftware: *numSoftware,
		ShouldClean: *shouldClean,
		DryRun:      *dryRun,
		MaxDays:     *maxDays,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	// Catalog entries go in after the random data so a clean run keeps them.
	if *catalog != "" {
		entries, err := seed.LoadCatalog(*catalog)
		if err != nil {
			log.Fatalf("❌ Loading catalog failed: %v", err)
		}
		created, err := seed.SeedCatalog(database.DB, entries)
		if err != nil {
			log.Fatalf("❌ Catalog seeding failed: %v", err)
		}
		log.Printf("✓ %d catalog entries created from %s", created, *catalog)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("🔑 All seeded users have the password: password123")
}
