package main

import (
	"fmt"
	"os"

	"github.com/sim-feed/user-service/internal/config"
	"github.com/sim-feed/user-service/internal/log"
	"github.com/sim-feed/user-service/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The schema is owned by the model structs; this binary applies it and
// seeds the built-in personas, which have no write endpoint.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.NewSugar(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := gorm.Open(postgres.Open(cfg.Database.PostgresDSN), &gorm.Config{})
	if err != nil {
		logger.Fatalw("Failed to connect to database", "error", err)
	}

	if err := model.Migrate(db); err != nil {
		logger.Fatalw("Migration failed", "error", err)
	}
	logger.Infow("Schema migrated")

	seeds := []model.Persona{
		{Username: "the_oracle", Bio: "Answers every question with another question.", Description: "Default persona seeded at install time."},
		{Username: "daily_digest", Bio: "Summarizes what the feed talked about today.", Description: "Default persona seeded at install time."},
	}
	for i := range seeds {
		res := db.Where(model.Persona{Username: seeds[i].Username}).FirstOrCreate(&seeds[i])
		if res.Error != nil {
			logger.Fatalw("Persona seed failed", "username", seeds[i].Username, "error", res.Error)
		}
	}
	logger.Infow("Personas seeded", "count", len(seeds))
}
