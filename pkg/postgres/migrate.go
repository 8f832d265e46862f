package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// sourceURL normalizes a migrations directory into a file:// source URL.
func sourceURL(migrationsDir string) string {
	if strings.Contains(migrationsDir, "://") {
		return migrationsDir
	}
	return "file://" + migrationsDir
}

// RunMigrations runs all pending database migrations from the given source
// (a directory path or "file://..." URL). Returns nil when there is nothing
// to apply.
func RunMigrations(dsn string, migrationsDir string) error {
	m, err := migrate.New(sourceURL(migrationsDir), dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}

	return nil
}

// RunMigrationsDown rolls back all database migrations.
func RunMigrationsDown(dsn string, migrationsDir string) error {
	m, err := migrate.New(sourceURL(migrationsDir), dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations down: %w", err)
	}

	return nil
}
