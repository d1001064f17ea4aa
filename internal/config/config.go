package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Project folder storage
	ProjectsRoot string

	// Secret store
	SecretsFile string

	// Generative model endpoint
	GenerateURL   string
	GenerateModel string
	GeminiAPIKey  string // env fallback; secret store takes precedence

	// Web search endpoint
	SearchURL      string
	SearchEngineID string
	SearchAPIKey   string // env fallback; secret store takes precedence

	// Daily coaching report schedule (local hour, 0-23)
	ReportHour int

	// Optional Authorizer session validation
	AuthzURL      string
	AuthzClientID string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DBType:            getEnv("DB_TYPE", "mysql"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		ProjectsRoot:      getEnv("PROJECTS_ROOT", "./denote-projects"),
		SecretsFile:       getEnv("SECRETS_FILE", "./denote-secrets.json"),
		GenerateURL:       getEnv("GENERATE_URL", ""),
		GenerateModel:     getEnv("GENERATE_MODEL", "gemini-1.5-pro"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		SearchURL:         getEnv("SEARCH_URL", "https://www.googleapis.com/customsearch/v1"),
		SearchEngineID:    getEnv("SEARCH_ENGINE_ID", ""),
		SearchAPIKey:      getEnv("GOOGLE_SEARCH_API_KEY", ""),
		ReportHour:        getEnvAsInt("REPORT_HOUR", 20),
		AuthzURL:          getEnv("AUTHZ_URL", ""),
		AuthzClientID:     getEnv("AUTHZ_CLIENT_ID", ""),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	if cfg.GenerateURL == "" {
		return nil, fmt.Errorf("GENERATE_URL is required")
	}
	if cfg.ReportHour < 0 || cfg.ReportHour > 23 {
		return nil, fmt.Errorf("REPORT_HOUR must be between 0 and 23")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
