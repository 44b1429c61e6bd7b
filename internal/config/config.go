package config

import (
	"log"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Env               string
	Port              string
	DatabaseURL       string
	JWTSecret         []byte
	JWTExpiresMinutes int
	BcryptCost        int
	CORSOrigin        string
}

// Load reads configuration from environment variables. Missing DATABASE_URL
// or JWT_SECRET is fatal; everything else has a default.
func Load() *Config {
	cfg := &Config{
		Env:               getEnvWithDefault("ENV", "development"),
		Port:              getEnvWithDefault("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         []byte(os.Getenv("JWT_SECRET")),
		JWTExpiresMinutes: getEnvInt("JWT_EXPIRES_MINUTES", 20),
		BcryptCost:        getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		CORSOrigin:        getEnvWithDefault("CORS_ORIGIN", "*"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	if len(cfg.JWTSecret) == 0 {
		log.Fatal("JWT_SECRET is not set")
	}

	return cfg
}

// IsProduction reports whether the service runs with production error
// masking enabled.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
