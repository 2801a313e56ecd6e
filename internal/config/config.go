package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Env       string
	Port      string
	JWTSecret string

	PublicBaseURL string

	Database DatabaseConfig
	Serp     SerpConfig
	Gemini   GeminiConfig
	Redis    RedisConfig
	Storage  StorageConfig

	// RankRecheckInterval drives the background re-check worker; zero
	// disables it.
	RankRecheckInterval time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Verbose  bool
}

// SerpConfig holds the external search API configuration
type SerpConfig struct {
	APIKey  string
	BaseURL string
	Engine  string
	Country string
	Lang    string
}

// GeminiConfig holds the generative API configuration
type GeminiConfig struct {
	APIKey string
	Model  string
}

// RedisConfig holds the optional catalog cache configuration. An empty Addr
// disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}

// StorageConfig holds image storage configuration
type StorageConfig struct {
	Dir string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Env:           getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "3100"),
		JWTSecret:     jwtSecret,
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3100"),
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "festiloc"),
			Verbose:  getEnv("DB_VERBOSE", "false") == "true",
		},
		Serp: SerpConfig{
			APIKey:  os.Getenv("SERP_API_KEY"),
			BaseURL: getEnv("SERP_API_URL", "https://serpapi.com/search.json"),
			Engine:  getEnv("SERP_ENGINE", "google"),
			Country: getEnv("SERP_COUNTRY", "fr"),
			Lang:    getEnv("SERP_LANG", "fr"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			TTL:      getEnvDuration("REDIS_TTL", 5*time.Minute),
		},
		Storage: StorageConfig{
			Dir: getEnv("STORAGE_DIR", "./uploads"),
		},
		RankRecheckInterval: getEnvDuration("RANK_RECHECK_INTERVAL", 0),
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration parses a duration env var, accepting plain seconds too.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
