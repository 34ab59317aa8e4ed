package config

import (
	"fmt"
	"os"
	"strconv"

	domaincfg "beadloom/domain/config"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Storage configuration
	ArchivePath string // SQLite file for archived matches and standings

	// Logging
	LogLevel string

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool

	// Match rule overrides
	MaxPlayers       int
	TotalRounds      int
	ResilienceTrials int
	JudgeSeed        int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		ArchivePath:   getEnv("ARCHIVE_PATH", "beadloom.db"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),

		MaxPlayers:       getEnvInt("MATCH_MAX_PLAYERS", 0),
		TotalRounds:      getEnvInt("MATCH_TOTAL_ROUNDS", 0),
		ResilienceTrials: getEnvInt("JUDGE_RESILIENCE_TRIALS", 0),
		JudgeSeed:        getEnvInt("JUDGE_SEED", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" && c.ArchivePath == "" {
		return fmt.Errorf("ARCHIVE_PATH is required in production")
	}
	if c.MaxPlayers < 0 || c.TotalRounds < 0 || c.ResilienceTrials < 0 {
		return fmt.Errorf("match rule overrides must be non-negative")
	}

	return nil
}

// DomainConfig returns the match rules with any environment overrides applied.
// Zero-valued overrides keep the defaults.
func (c *Config) DomainConfig() *domaincfg.DomainConfig {
	rules := domaincfg.DefaultDomainConfig()
	if c.MaxPlayers > 0 {
		rules.MaxPlayers = c.MaxPlayers
	}
	if c.TotalRounds > 0 {
		rules.TotalRounds = c.TotalRounds
	}
	if c.ResilienceTrials > 0 {
		rules.ResilienceTrials = c.ResilienceTrials
	}
	if c.JudgeSeed > 0 {
		rules.JudgeSeed = uint32(c.JudgeSeed)
	}
	return rules
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
