// config/config.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment. Exactly one
// storage backend is picked at startup: MONGO_URI, then DATABASE_URL, then
// REDIS_URL, then the local JSON file.
type Config struct {
	BotToken    string `env:"BOT_TOKEN,required"`
	AdminID     int64  `env:"ADMIN_ID" envDefault:"0"`
	MongoURI    string `env:"MONGO_URI"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`
	DataFile    string `env:"DATA_FILE" envDefault:"users.json"`
	Port        string `env:"PORT" envDefault:"8080"`
	WebhookURL  string `env:"WEBHOOK_URL"`
	Debug       bool   `env:"DEBUG" envDefault:"false"`
}

// Load reads .env when present (missing file is fine, as on hosted deploys
// where everything comes from project settings) and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
