package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every pending up migration. It uses its own connection so
// closing the migrator never touches the application pool.
func Migrate(connStr string) error {
	return withMigrator(connStr, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("running migrations: %w", err)
		}

		return nil
	})
}

// Rollback reverts the given number of migrations.
func Rollback(connStr string, steps int) error {
	return withMigrator(connStr, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("rolling back migrations: %w", err)
		}

		return nil
	})
}

// Version returns the current schema version and whether it is dirty.
func Version(connStr string) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)

	err := withMigrator(connStr, func(m *migrate.Migrate) error {
		v, d, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}

		version, dirty = v, d

		return nil
	})

	return version, dirty, err
}

func withMigrator(connStr string, fn func(m *migrate.Migrate) error) error {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("opening migration database: %w", err)
	}

	driver, err := pgx.WithInstance(db, &pgx.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("creating pgx migrate driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return fmt.Errorf("creating iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		db.Close()
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	defer m.Close()

	return fn(m)
}
