// Seed brings the schema up to date and loads the MPA rating and genre
// reference data. Safe to run repeatedly: existing rows are left alone.
package main

import (
	"log"

	"filmorate/internal/config"
	"filmorate/internal/database"
	"filmorate/internal/repository"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Seeding reference data...")
	if err := repository.SeedReferenceData(db); err != nil {
		log.Fatal("Seeding failed:", err)
	}

	log.Printf("Done: %d MPA ratings, %d genres",
		len(repository.DefaultMpaRatings()), len(repository.DefaultGenres()))
}
