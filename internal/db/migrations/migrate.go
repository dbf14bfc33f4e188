// Package migrations applies the versioned SQL schema with golang-migrate
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"    // mysql:// URLs
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres:// URLs
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/hasnain-nisan/admindash/internal/logger"
)

//go:embed sql
var scripts embed.FS

// Config holds migration configuration
type Config struct {
	// Driver selects the embedded script set: postgres or mysql
	Driver        string
	DatabaseURL   string
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Driver:        "postgres",
		RetryAttempts: 5,
		RetryDelay:    3 * time.Second,
	}
}

// Service handles database migrations
type Service struct {
	config  Config
	migrate *migrate.Migrate
}

// Scripts returns the embedded migration source for driver
func Scripts(driver string) (source.Driver, error) {
	switch driver {
	case "postgres", "mysql":
	default:
		return nil, fmt.Errorf("no migration scripts for driver %q", driver)
	}
	src, err := iofs.New(scripts, "sql/"+driver)
	if err != nil {
		return nil, fmt.Errorf("load %s migration scripts: %w", driver, err)
	}
	return src, nil
}

// NewService connects to the database, retrying while it comes up
func NewService(config Config) (*Service, error) {
	if config.RetryAttempts < 1 {
		config.RetryAttempts = 1
	}

	var (
		m   *migrate.Migrate
		err error
	)
	for i := 0; i < config.RetryAttempts; i++ {
		var src source.Driver
		if src, err = Scripts(config.Driver); err != nil {
			return nil, err
		}
		m, err = migrate.NewWithSourceInstance("iofs", src, config.DatabaseURL)
		if err == nil {
			break
		}
		logger.Warnf("Failed to connect to database, attempt %d/%d: %v", i+1, config.RetryAttempts, err)
		time.Sleep(config.RetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance after %d attempts: %w", config.RetryAttempts, err)
	}

	return &Service{config: config, migrate: m}, nil
}

// Up runs all pending migrations
func (s *Service) Up() error {
	if err := s.migrate.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Migrations completed successfully")
	return nil
}

// Down rolls back all migrations
func (s *Service) Down() error {
	if err := s.migrate.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to rollback migrations: %w", err)
	}
	logger.Info("Rollback completed successfully")
	return nil
}

// Steps runs n migrations up (n > 0) or down (n < 0)
func (s *Service) Steps(n int) error {
	if err := s.migrate.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run %d migrations: %w", n, err)
	}
	return nil
}

// Version returns the current migration version
func (s *Service) Version() (uint, bool, error) {
	return s.migrate.Version()
}

// Force sets the version without running migrations, clearing a dirty state
func (s *Service) Force(version int) error {
	return s.migrate.Force(version)
}

// Close releases the source and database handles
func (s *Service) Close() error {
	srcErr, dbErr := s.migrate.Close()
	return errors.Join(srcErr, dbErr)
}
