package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Feed ingestion configuration
	Feed FeedConfig

	// Scheduler configuration
	Scheduler SchedulerConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// FeedConfig holds feed source and row-processing settings
type FeedConfig struct {
	URL             string
	RequestTimeout  time.Duration
	MaxRows         int
	DefaultCurrency string
	// Tokens accepted as an affirmative value for boolean feed columns
	// (free shipping, gift). The feed mixes Bulgarian and English.
	AffirmativeTokens []string
	// Optional YAML overrides for field aliases and category rules.
	AliasFile string
	RulesFile string
}

// SchedulerConfig holds pipeline scheduling settings
type SchedulerConfig struct {
	// Cron expression for recurring runs. Default: every day at 09:00.
	CronSpec string
	// Run the pipeline immediately on process start.
	RunOnStart bool
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "catalog"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Feed: FeedConfig{
			URL:               getEnv("FEED_URL", ""),
			RequestTimeout:    getDurationEnv("FEED_TIMEOUT", 60*time.Second),
			MaxRows:           getIntEnv("FEED_MAX_ROWS", 2000),
			DefaultCurrency:   getEnv("FEED_DEFAULT_CURRENCY", "EUR"),
			AffirmativeTokens: getSliceEnv("FEED_AFFIRMATIVE_TOKENS", []string{"да", "yes", "1", "true"}),
			AliasFile:         getEnv("FEED_ALIAS_FILE", ""),
			RulesFile:         getEnv("CATEGORY_RULES_FILE", ""),
		},
		Scheduler: SchedulerConfig{
			CronSpec:   getEnv("SCHEDULER_CRON", "0 9 * * *"),
			RunOnStart: getBoolEnv("SCHEDULER_RUN_ON_START", true),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Feed.MaxRows <= 0 {
		return fmt.Errorf("FEED_MAX_ROWS must be positive")
	}
	// Feed.URL is deliberately NOT required: a missing feed URL skips the
	// ingest stage at run time instead of failing process startup.
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
