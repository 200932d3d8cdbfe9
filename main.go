package main

import (
	"log"
	"net/http"
	"time"

	"github.com/bingolive/bingo-backend/config"
	"github.com/bingolive/bingo-backend/controllers"
	"github.com/bingolive/bingo-backend/routes"
	"github.com/bingolive/bingo-backend/services"
	"github.com/bingolive/bingo-backend/store"
	"github.com/bingolive/bingo-backend/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[FATAL] invalid configuration: %v", err)
	}

	db := config.SetupDatabase(cfg.DatabaseURL)
	st := store.NewGorm(db)

	rounds := services.NewRoundService(st, logger.Log)
	drawer := services.NewAutoDrawer(rounds, cfg.AutoDrawInterval, logger.Log)
	participants := services.NewParticipantService(st, logger.Log)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(
		r,
		st,
		controllers.NewRoundController(rounds, drawer),
		controllers.NewParticipantController(participants),
		controllers.NewProfileController(st),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	logger.Infof("bingo backend listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
