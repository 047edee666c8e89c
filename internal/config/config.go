package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// Storage (rendered report artifacts)
	StoragePath string

	// Organization header printed on reports and receipts
	OrgName       string
	OrgDepartment string
	OrgAddress    string

	// Background Workers
	WorkerCount int

	// Expiry sweep interval in minutes
	SweepIntervalMinutes int

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		StoragePath:          getEnv("STORAGE_PATH", "./storage"),
		OrgName:              getEnv("ORG_NAME", "Prefeitura Municipal"),
		OrgDepartment:        getEnv("ORG_DEPARTMENT", "Setor de Transporte"),
		OrgAddress:           getEnv("ORG_ADDRESS", ""),
		WorkerCount:          getEnvAsInt("WORKER_COUNT", 5),
		SweepIntervalMinutes: getEnvAsInt("SWEEP_INTERVAL_MINUTES", 60),
		AllowedOrigins:       getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:            getEnv("SENTRY_DSN", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.SweepIntervalMinutes <= 0 {
		return nil, fmt.Errorf("SWEEP_INTERVAL_MINUTES must be positive")
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
