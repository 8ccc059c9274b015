// Package config loads all runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Scraper  ScraperConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Queue    QueueConfig
	Images   ImagesConfig
	Catalog  CatalogConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type ScraperConfig struct {
	RateLimitMin    time.Duration
	RateLimitMax    time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	FetchTimeout    time.Duration
	ConcurrentLimit int
	UserAgents      []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type QueueConfig struct {
	// Type selects the task queue backend: "memory" or "redis".
	Type string
	Key  string
}

type ImagesConfig struct {
	Enabled bool
	Dir     string
}

type CatalogConfig struct {
	BaseURL string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Scraper: ScraperConfig{
			RateLimitMin:    getDurationOrDefault("SCRAPER_RATE_LIMIT_MIN", 2*time.Second),
			RateLimitMax:    getDurationOrDefault("SCRAPER_RATE_LIMIT_MAX", 6*time.Second),
			MaxRetries:      getIntOrDefault("SCRAPER_MAX_RETRIES", 3),
			RetryDelay:      getDurationOrDefault("SCRAPER_RETRY_DELAY", 5*time.Second),
			FetchTimeout:    getDurationOrDefault("SCRAPER_FETCH_TIMEOUT", 30*time.Second),
			ConcurrentLimit: getIntOrDefault("SCRAPER_CONCURRENT_LIMIT", 3),
			UserAgents:      getStringSliceOrDefault("SCRAPER_USER_AGENTS", nil),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getIntOrDefault("DB_PORT", 5432),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", ""),
			DBName:   getEnvOrDefault("DB_NAME", "paddle_scraper"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getIntOrDefault("REDIS_DB", 0),
		},
		Queue: QueueConfig{
			Type: getEnvOrDefault("QUEUE_TYPE", "memory"),
			Key:  getEnvOrDefault("QUEUE_KEY", "scrape:tasks"),
		},
		Images: ImagesConfig{
			Enabled: getBoolOrDefault("IMAGES_ENABLED", true),
			Dir:     getEnvOrDefault("IMAGES_DIR", "paddle_images"),
		},
		Catalog: CatalogConfig{
			BaseURL: getEnvOrDefault("CATALOG_BASE_URL", "http://localhost:3000"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scraper.ConcurrentLimit < 1 {
		return fmt.Errorf("SCRAPER_CONCURRENT_LIMIT must be at least 1")
	}

	if c.Scraper.RateLimitMin > c.Scraper.RateLimitMax {
		return fmt.Errorf("SCRAPER_RATE_LIMIT_MIN cannot be greater than SCRAPER_RATE_LIMIT_MAX")
	}

	switch c.Queue.Type {
	case "memory", "redis":
	default:
		return fmt.Errorf("QUEUE_TYPE must be \"memory\" or \"redis\", got %q", c.Queue.Type)
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
