package main

import (
	"os"
	"registry/cmd/migration/initialize"
	"registry/cmd/migration/seed"
	"registry/config"
	"registry/internal/database"
	"registry/internal/logger"
)

func main() {
	log := logger.New("migration")

	cfg, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Er("failed to create database", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := initialize.InitializeTables(db.SQL, cfg, log); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if cfg.Environment == "development" {
		if err := seed.Seed(db.SQL, cfg, log); err != nil {
			log.Er("failed to seed data", err)
			os.Exit(1)
		}

		// Re-seeding can leave stale entries (the profile list) behind.
		if err := db.FlushAllCaches(); err != nil {
			log.Er("failed to flush caches after seeding", err)
		}
	}

	log.Info("Migration complete")
}
