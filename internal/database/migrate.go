package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"

	// Reads db/migrations from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations brings the campaigns and campaign_logs schema up to the
// newest file in migrationsPath. It refuses to run on a dirty schema: a
// half-applied migration has to be repaired by hand with `migrate force`.
func RunMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("creating migrator for %s: %w", migrationsPath, err)
	}

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema version %d is dirty; fix it and run migrate force", from)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Debug("schema up to date", slog.Uint64("version", uint64(from)))
			return nil
		}
		return fmt.Errorf("running migrations: %w", err)
	}

	to, _, _ := m.Version()
	slog.Info("schema migrated",
		slog.Uint64("from", uint64(from)),
		slog.Uint64("to", uint64(to)),
	)
	return nil
}
