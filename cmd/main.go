// Command admindash runs the admin API server
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	gormlogger "gorm.io/gorm/logger"

	"github.com/hasnain-nisan/admindash/config"
	"github.com/hasnain-nisan/admindash/internal/app"
	"github.com/hasnain-nisan/admindash/internal/db"
	"github.com/hasnain-nisan/admindash/internal/events"
	"github.com/hasnain-nisan/admindash/internal/logger"
	"github.com/hasnain-nisan/admindash/internal/metrics"
)

func main() {
	configPath := flag.String("config", os.Getenv(config.EnvConfigFile), "Path to a YAML config file")
	autoMigrate := flag.Bool("auto-migrate", false, "Create or update the schema on start (always on for sqlite)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.InitializeAndConfigure(cfg.Log.Level, logger.Format(cfg.Log.Format))

	dbLogLevel := gormlogger.Warn
	if logger.Level() == "debug" {
		dbLogLevel = gormlogger.Info
	}
	conn, err := db.New(db.Options{
		DatabaseConfig: cfg.Database,
		LogLevel:       dbLogLevel,
		AutoMigrate:    *autoMigrate || cfg.Database.Driver == db.DriverSQLite,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Server.MetricsEnabled {
		m = metrics.New()
		events.SubscribeAll(m.RecordEvent)
	}
	events.SubscribeAll(func(_ context.Context, ev events.Event) error {
		logger.InfoWithFields("entity changed", map[string]interface{}{
			"entity": ev.Entity,
			"action": string(ev.Type),
			"id":     ev.ID,
			"actor":  ev.Actor,
		})
		return nil
	})
	events.Start(ctx)

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("No JWT secret configured, authorization is disabled")
	}
	server := app.New(app.Options{
		DB:        conn,
		JWTSecret: cfg.Auth.JWTSecret,
		Metrics:   m,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", cfg.Server.ListenAddress)
		errCh <- server.Listen(cfg.Server.ListenAddress)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatalf("Server stopped: %v", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down server")
		if err := server.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			logger.Errorf("Failed to shut down cleanly: %v", err)
		}
	}

	if sqlDB, err := conn.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Errorf("Failed to close database: %v", err)
		}
	}
}
