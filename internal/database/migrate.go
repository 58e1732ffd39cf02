package database

import (
	"log"

	"emergency-bed-booking/internal/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Hospital{},
		&models.Reservation{},
		&models.LedgerEntry{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}
	log.Println("Database schema migrated")
}
