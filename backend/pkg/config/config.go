package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// Postgres
	PostgresDSN string

	// Trending
	TrendingCacheTTL       time.Duration
	TrendingRefreshEvery   time.Duration
	TrendingDoublePrevious bool

	// Suggestion precompute job
	SuggestPrecomputeEvery time.Duration
	SuggestBatchSize       int
	SuggestBatchDelay      time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", ""),
		PostgresDSN:   getEnv("POSTGRES_DSN", ""),

		TrendingCacheTTL:       getEnvDuration("TRENDING_CACHE_TTL", 15*time.Minute),
		TrendingRefreshEvery:   getEnvDuration("TRENDING_REFRESH_EVERY", 10*time.Minute),
		TrendingDoublePrevious: getEnvBool("TRENDING_DOUBLE_PREVIOUS", false),

		SuggestPrecomputeEvery: getEnvDuration("SUGGEST_PRECOMPUTE_EVERY", 30*time.Minute),
		SuggestBatchSize:       getEnvInt("SUGGEST_BATCH_SIZE", 50),
		SuggestBatchDelay:      getEnvDuration("SUGGEST_BATCH_DELAY", 200*time.Millisecond),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Neo4jURI == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_URI")
	}
	if c.Neo4jUser == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_USER")
	}
	if c.Neo4jPassword == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_PASSWORD")
	}
	if c.PostgresDSN == "" {
		return apperrors.NewConfigMissingRequired("POSTGRES_DSN")
	}
	if c.TrendingCacheTTL <= 0 {
		return apperrors.NewConfigMissingRequired("TRENDING_CACHE_TTL")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
