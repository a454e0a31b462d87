// Package database provides connection setup for MariaDB and Redis.
// Both connections are created once at startup and shared across the
// application via dependency injection. This package owns the connection
// lifecycle (open, configure pool, ping, close).
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// MariaDB driver -- imported for side effect of registering the driver.
	_ "github.com/go-sql-driver/mysql"

	"github.com/keyxmakerx/campaignlog/internal/config"
)

// maxPingAttempts bounds the startup wait for MariaDB.
const maxPingAttempts = 10

// NewMariaDB creates a MariaDB connection pool from cfg and pings it,
// retrying with exponential backoff while the database is still starting.
func NewMariaDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening mariadb connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	backoff := 1 * time.Second
	var pingErr error

	for attempt := 1; attempt <= maxPingAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		pingErr = db.PingContext(ctx)
		cancel()

		if pingErr == nil {
			return db, nil
		}
		if attempt == maxPingAttempts {
			break
		}

		slog.Warn("mariadb not ready, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", maxPingAttempts),
			slog.Duration("backoff", backoff),
			slog.Any("error", pingErr),
		)
		time.Sleep(backoff)
		backoff = min(backoff*2, 30*time.Second)
	}

	db.Close()
	return nil, fmt.Errorf("pinging mariadb after %d attempts: %w", maxPingAttempts, pingErr)
}
