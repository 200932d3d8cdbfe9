package config

import (
	"log"

	"github.com/bingolive/bingo-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// SetupDatabase connects to postgres and runs migrations. TranslateError
// is on so unique violations surface as gorm.ErrDuplicatedKey.
func SetupDatabase(databaseURL string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to DB: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Round{},
		&models.Participant{},
	); err != nil {
		log.Fatalf("[FATAL] Migration failed: %v", err)
	}

	DB = db
	log.Println("database connected and migrated")
	return db
}
