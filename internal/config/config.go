package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultPort        = "3000"
	defaultDatabaseURL = "/tmp/test.db"
)

// Config holds everything the api and holoctl binaries read from the environment.
type Config struct {
	Port           string        `env:"PORT" envDefault:"3000"`
	DatabaseURL    string        `env:"DATABASE_URL" envDefault:"/tmp/test.db"`
	AutoMigrate    bool          `env:"AUTO_MIGRATE" envDefault:"true"`
	DBLogSQL       bool          `env:"DB_LOG_SQL" envDefault:"false"`
	AdminSecretKey string        `env:"ADMIN_SECRET_KEY"`
	AdminTokenTTL  time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"12h"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"text"`
	GinMode        string        `env:"GIN_MODE" envDefault:"debug"`
}

// AdminEnabled reports whether the admin console should be mounted.
func (c *Config) AdminEnabled() bool {
	return c.AdminSecretKey != ""
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.AdminSecretKey = strings.TrimSpace(cfg.AdminSecretKey)
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.GinMode = strings.ToLower(strings.TrimSpace(cfg.GinMode))
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultDatabaseURL
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.AdminTokenTTL <= 0 {
		return fmt.Errorf("ADMIN_TOKEN_TTL must be > 0")
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be one of: text, json")
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be one of: debug, release, test")
	}
	return nil
}
