// Standalone migration runner for deploys that do not want AutoMigrate
// at server boot.
package main

import (
	"log"

	"github.com/bingolive/bingo-backend/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[FATAL] invalid configuration: %v", err)
	}
	config.SetupDatabase(cfg.DatabaseURL)
	log.Println("database migration completed")
}
