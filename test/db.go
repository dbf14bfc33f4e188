package test

import (
	"path/filepath"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hasnain-nisan/admindash/config"
	"github.com/hasnain-nisan/admindash/internal/db"
)

// openTestDB opens a migrated SQLite database in a directory removed by the
// testing package when the test ends
func openTestDB(s *Suite) *gorm.DB {
	path := filepath.Join(s.t.TempDir(), "admindash_test.db")
	conn, err := db.New(db.Options{
		DatabaseConfig: config.DatabaseConfig{Driver: db.DriverSQLite, DSN: path},
		LogLevel:       logger.Silent,
		AutoMigrate:    true,
	})
	s.Require().NoError(err, "Failed to open test database")
	return conn
}

// UseDB points the suite at database instead of opening its own. It must be
// passed before the server is set up, so as an Option.
func UseDB(database *gorm.DB) Option {
	return func(s *Suite) {
		s.DB = database
	}
}

func setupDB(s *Suite) {
	if s.DB != nil {
		return
	}
	s.DB = openTestDB(s)
	s.addCleanup(func() {
		if sqlDB, err := s.DB.DB(); err == nil {
			s.Require().NoError(sqlDB.Close(), "Failed to close test database")
		}
	})
}
