package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server ServerConfig

	// Database Configuration
	Database DatabaseConfig

	// Redis push-feed Configuration
	Redis RedisConfig

	// Messaging Configuration
	Messaging MessagingConfig

	// Logging Configuration
	Logging LoggingConfig
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int    // seconds
	WriteTimeout int    // seconds
	Environment  string // development, staging, production
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Username     string
	Password     string
	DatabaseName string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig configures the Redis-backed insert feed. When disabled the
// service falls back to the in-process hub (single-instance deployments).
type RedisConfig struct {
	Addr    string
	Channel string
	Enabled bool
}

// MessagingConfig contains the messaging core configuration, including the
// well-known operator identity that stands in for the business.
type MessagingConfig struct {
	OperatorID     string
	OperatorName   string
	ThreadPageSize int
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// Load builds the configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvOrDefault("SERVER_PORT", "8085"),
			ReadTimeout:  getEnvIntOrDefault("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvIntOrDefault("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "caringhands"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			DatabaseName: getEnvOrDefault("DB_NAME", "caringhands_db"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			Addr:    getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Channel: getEnvOrDefault("REDIS_FEED_CHANNEL", "messaging:inserts"),
			Enabled: getEnvOrDefault("REDIS_FEED_ENABLED", "false") == "true",
		},
		Messaging: MessagingConfig{
			OperatorID:     getEnvOrDefault("OPERATOR_ID", "office"),
			OperatorName:   getEnvOrDefault("OPERATOR_NAME", "Caring Hands Office"),
			ThreadPageSize: getEnvIntOrDefault("THREAD_PAGE_SIZE", 50),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}
}

// DSN builds the MySQL connection string from the database config.
func (cfg *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
