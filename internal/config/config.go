// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL of the dashboard, used for CORS.
	BaseURL string

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// Database holds MariaDB connection settings.
	Database DatabaseConfig

	// Redis holds Redis connection settings.
	Redis RedisConfig

	// Ingest holds settings for the log ingestion endpoint.
	Ingest IngestConfig

	// Feed holds activity feed settings.
	Feed FeedConfig

	// MetricsEnabled exposes Prometheus metrics on /metrics.
	MetricsEnabled bool
}

// DatabaseConfig holds MariaDB connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so
// container orchestrators can manage each independently.
// If DATABASE_URL is set, it takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MariaDB address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	User     string
	Password string
	Name     string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	// MigrationsPath is the directory holding *.up.sql / *.down.sql files.
	// Empty disables auto-migration on startup.
	MigrationsPath string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// fields with the driver's Config.FormatDSN() so special characters in
// passwords are escaped.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	cfg.MultiStatements = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string

	// CampaignCacheTTL is how long campaign snapshots stay cached.
	CampaignCacheTTL time.Duration
}

// IngestConfig holds settings for POST /api/v1/campaigns/:id/logs.
type IngestConfig struct {
	// KeyHash is the bcrypt hash of the shared key backends send in the
	// X-Ingest-Key header. Required in production.
	KeyHash string

	// RateLimit is the maximum number of ingest requests per client IP per
	// RateWindow.
	RateLimit  int
	RateWindow time.Duration
}

// FeedConfig holds activity feed settings.
type FeedConfig struct {
	// PageSize is the number of log entries per feed page.
	PageSize int
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		BaseURL:  getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "campaignlog"),
			Password:        getEnv("DB_PASSWORD", "campaignlog"),
			Name:            getEnv("DB_NAME", "campaignlog"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "db/migrations"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Redis: RedisConfig{
			URL:              getEnv("REDIS_URL", "redis://localhost:6379"),
			CampaignCacheTTL: getEnvDuration("CAMPAIGN_CACHE_TTL", 2*time.Minute),
		},

		Ingest: IngestConfig{
			KeyHash:    getEnv("INGEST_KEY_HASH", ""),
			RateLimit:  getEnvInt("INGEST_RATE_LIMIT", 600),
			RateWindow: getEnvDuration("INGEST_RATE_WINDOW", time.Minute),
		},

		Feed: FeedConfig{
			PageSize: getEnvInt("FEED_PAGE_SIZE", 50),
		},

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}

	if cfg.Feed.PageSize < 1 || cfg.Feed.PageSize > 500 {
		return nil, fmt.Errorf("FEED_PAGE_SIZE must be between 1 and 500, got %d", cfg.Feed.PageSize)
	}

	// Validate required fields in production. Case-insensitive check catches
	// common variants like "Production", "prod", etc.
	envLower := strings.ToLower(cfg.Env)
	if (envLower == "production" || envLower == "prod") && cfg.Ingest.KeyHash == "" {
		return nil, fmt.Errorf("INGEST_KEY_HASH is required in production")
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvBool reads a boolean env var ("true", "1", "false", ...) or returns the default.
func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "90s") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
