package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, loaded from .env then the
// environment.
type Config struct {
	DatabaseURL      string        `env:"DATABASE_URL,required"`
	Port             string        `env:"PORT" envDefault:"4000"`
	AutoDrawInterval time.Duration `env:"AUTO_DRAW_INTERVAL" envDefault:"3s"`
	CORSOrigins      []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// Load reads .env when present, then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
