package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the application configuration.
type Config struct {
	ServerPort          int
	DatabasePath        string
	Environment         string
	SecretKey           string
	AccessTokenLifetime time.Duration
	BcryptCost          int
	CORSOrigins         []string
	SentryDSN           string

	// Optional initial superuser seeded at startup when not present.
	FirstSuperuserEmail    string
	FirstSuperuserUsername string
	FirstSuperuserPassword string
}

// Load loads configuration from a .env file (if present) and environment
// variables, falling back to defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	lifetimeMinutes, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %w", err)
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	return &Config{
		ServerPort:          port,
		DatabasePath:        getEnv("DATABASE_PATH", "./cadot-user.db"),
		Environment:         getEnv("APP_ENV", "development"),
		SecretKey:           getEnv("SECRET_KEY", "key-change-in-production"),
		AccessTokenLifetime: time.Duration(lifetimeMinutes) * time.Minute,
		BcryptCost:          cost,
		CORSOrigins:         splitList(getEnv("BACKEND_CORS_ORIGINS", "http://localhost:3000")),
		SentryDSN:           os.Getenv("SENTRY_DSN"),

		FirstSuperuserEmail:    os.Getenv("FIRST_SUPERUSER_EMAIL"),
		FirstSuperuserUsername: getEnv("FIRST_SUPERUSER_USERNAME", "admin"),
		FirstSuperuserPassword: os.Getenv("FIRST_SUPERUSER_PASSWORD"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
