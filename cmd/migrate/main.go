// Command migrate applies the schema for the backend.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"accesshub/internal/config"
	"accesshub/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate/main.go <up|index>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0)))
	switch cmd {
	case "up":
		// Connect already migrates outside production; production connects
		// without migrating, so apply explicitly here.
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Println("schema migrations applied")
	case "index":
		if err := database.EnsurePendingUniqueIndex(db); err != nil {
			return fmt.Errorf("pending unique index failed: %w", err)
		}
		log.Println("pending uniqueness index ensured")
	default:
		return usage()
	}

	return nil
}
