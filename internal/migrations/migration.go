package migrations

import (
	"log"
	"rental_crm/internal/database"
	"rental_crm/internal/models"
	"rental_crm/internal/repository"
	"rental_crm/internal/services"

	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date and seeds a starter catalog on
// an empty database. Never drops tables — quotes are the operator's books.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	if err := seedCatalog(db); err != nil {
		log.Printf("Warning: Failed to seed catalog: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// seedCatalog creates a few common catalog entries so /items works out of the
// box. Skipped when the catalog already has rows.
func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Equipment{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Catalog already seeded")
		return nil
	}

	log.Println("Seeding starter catalog...")

	catalogService := services.NewCatalogService(repository.NewEquipmentRepository(db))

	entries := []services.AddEquipmentInput{
		{Name: "Aputure 600x", Category: string(models.CategoryLightHead), DailyPrice: 5000, QtyTotal: 2, Aliases: "600x,600 икс,апутур 600"},
		{Name: "Aputure F22x", Category: string(models.CategoryLightHead), DailyPrice: 3000, QtyTotal: 1, Aliases: "f22x,ф22"},
		{Name: "C-Stand 40", Category: string(models.CategoryGrip), DailyPrice: 500, QtyTotal: 6, Aliases: "систенд 40,c-stand,систенд"},
	}
	for _, entry := range entries {
		if _, err := catalogService.AddEquipment(entry); err != nil {
			return err
		}
	}

	log.Println("Starter catalog seeded")
	return nil
}
