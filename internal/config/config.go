// internal/config/config.go
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          string
	Environment   string
	JWTSecret     string
	JWTExpiry     int
	RefreshExpiry int

	// Frontend URL for CORS
	FrontendURL string

	// Seed demo data on boot (the store is memory-only, so without seed
	// data the dashboard is empty)
	SeedDemoData bool
}

func Load() *Config {
	return &Config{
		Port:          getEnv("API_PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry:     getEnvInt("JWT_EXPIRY", 24),
		RefreshExpiry: getEnvInt("REFRESH_EXPIRY", 7),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
		SeedDemoData:  getEnvBool("SEED_DEMO_DATA", true),
	}
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
