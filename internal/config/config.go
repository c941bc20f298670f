package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath    string
	HistoryDir      string
	LogLevel        string
	DevMode         bool
	EntryThreshold  float64
	ExitThreshold   float64
	MaxPoolSize     int
	OptimizerWorkers int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:     getEnv("DATABASE_PATH", "./data/advisor.db"),
		HistoryDir:       getEnv("HISTORY_DIR", "./data/history"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		EntryThreshold:   getEnvAsFloat("POOL_ENTRY_THRESHOLD", 90),
		ExitThreshold:    getEnvAsFloat("POOL_EXIT_THRESHOLD", 80),
		MaxPoolSize:      getEnvAsInt("MAX_POOL_SIZE", 20),
		OptimizerWorkers: getEnvAsInt("OPTIMIZER_WORKERS", 0), // 0 = GOMAXPROCS
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.EntryThreshold <= c.ExitThreshold {
		return fmt.Errorf("POOL_ENTRY_THRESHOLD (%.1f) must be above POOL_EXIT_THRESHOLD (%.1f)",
			c.EntryThreshold, c.ExitThreshold)
	}
	if c.MaxPoolSize <= 0 {
		return fmt.Errorf("MAX_POOL_SIZE must be positive")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
