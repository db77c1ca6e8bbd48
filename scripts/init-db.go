package main

import (
	"fmt"
	"log"

	"rental_crm/internal/config"
	"rental_crm/internal/database"
	"rental_crm/internal/migrations"
	"rental_crm/internal/models"
)

// Destructive reset: drops everything and recreates the schema plus the
// starter catalog. For development only.
func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.QuoteItem{},
		&models.Quote{},
		&models.Equipment{},
		&models.Renter{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Creating tables...")
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("Database initialized successfully!")
}
