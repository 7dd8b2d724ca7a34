package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/fieldcrypt/internal/database"
)

// migrationsPath returns the migration source for a database driver.
func migrationsPath(driver string) string {
	if driver == database.DriverMySQL {
		return "file://migrations/mysql"
	}
	return "file://migrations/postgresql"
}

// migrationURL turns the configured connection string into a golang-migrate database
// URL. MySQL DSNs carry no scheme, so one is added.
func migrationURL(driver, connectionString string) string {
	if driver == database.DriverMySQL {
		return "mysql://" + connectionString
	}
	return connectionString
}

// RunMigrations applies every pending migration for driver. No pending migration is not
// an error.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	if err := database.ValidateDriver(driver); err != nil {
		return err
	}

	logger.Info("running database migrations", slog.String("driver", driver))

	m, err := migrate.New(migrationsPath(driver), migrationURL(driver, connectionString))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
