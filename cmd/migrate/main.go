// This file is used to run database migrations
// How to run:
// go run cmd/migrate/main.go              # Run all pending migrations
// go run cmd/migrate/main.go -down        # Rollback all migrations
// go run cmd/migrate/main.go -steps 1     # Run one migration
// go run cmd/migrate/main.go -steps -1    # Rollback one migration
// go run cmd/migrate/main.go -force 1     # Force version 1
// go run cmd/migrate/main.go -auto        # Create the schema from the models (any driver, sqlite included)
package main

import (
	"flag"
	"os"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/hasnain-nisan/admindash/config"
	"github.com/hasnain-nisan/admindash/internal/db"
	"github.com/hasnain-nisan/admindash/internal/db/migrations"
	"github.com/hasnain-nisan/admindash/internal/logger"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv(config.EnvConfigFile), "Path to a YAML config file")
		dbURLFlag  = flag.String("db", "", "Database URL (optional, defaults to the configured database)")
		down       = flag.Bool("down", false, "Roll back migrations")
		steps      = flag.Int("steps", 0, "Number of migrations to apply (up or down)")
		force      = flag.Int("force", -1, "Force a specific version")
		retries    = flag.Int("retries", 5, "Number of connection retries")
		retryWait  = flag.Duration("retry-wait", 3*time.Second, "Wait time between retries")
		auto       = flag.Bool("auto", false, "Create or update the schema with gorm instead of the SQL scripts")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.InitializeAndConfigure(cfg.Log.Level, logger.Format(cfg.Log.Format))

	if *auto {
		conn, err := db.New(db.Options{DatabaseConfig: cfg.Database, LogLevel: gormlogger.Warn, AutoMigrate: true})
		if err != nil {
			logger.Fatalf("Auto-migration failed: %v", err)
		}
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
		logger.Info("Schema is up to date")
		return
	}

	dbURL := *dbURLFlag
	if dbURL == "" {
		if dbURL, err = db.MigrationURL(cfg.Database); err != nil {
			logger.Fatalf("%v (use -auto)", err)
		}
	}

	service, err := migrations.NewService(migrations.Config{
		Driver:        cfg.Database.Driver,
		DatabaseURL:   dbURL,
		RetryAttempts: *retries,
		RetryDelay:    *retryWait,
	})
	if err != nil {
		logger.Fatalf("Failed to create migration service: %v", err)
	}
	defer func() {
		if err := service.Close(); err != nil {
			logger.Warnf("Failed to close migration service: %v", err)
		}
	}()

	switch {
	case *force >= 0:
		if err := service.Force(*force); err != nil {
			logger.Fatalf("Failed to force version %d: %v", *force, err)
		}
		logger.Infof("Successfully forced version to %d", *force)
	case *steps != 0:
		if err := service.Steps(*steps); err != nil {
			logger.Fatalf("Failed to apply %d steps: %v", *steps, err)
		}
		logger.Infof("Successfully applied %d steps", *steps)
	case *down:
		if err := service.Down(); err != nil {
			logger.Fatalf("Migration rollback failed: %v", err)
		}
	default:
		if err := service.Up(); err != nil {
			logger.Fatalf("Migration failed: %v", err)
		}
	}

	version, dirty, err := service.Version()
	if err != nil {
		logger.Warnf("Could not get final version: %v", err)
		return
	}
	logger.Infof("Current migration version: %d (dirty: %v)", version, dirty)
}
