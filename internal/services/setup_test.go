package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/db/repos"
)

// TestSetup holds the services under test, backed by an in-memory database
type TestSetup struct {
	DB           *gorm.DB
	Users        *User
	Clients      *Client
	Projects     *Project
	Stakeholders *Stakeholder
	Interviews   *Interview
	Configs      *Config
	ctx          context.Context
}

// NewTestSetup creates a new test setup with in-memory database
func NewTestSetup(t *testing.T) *TestSetup {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create in-memory database")
	require.NoError(t, db.AutoMigrate(models.All()...), "Failed to run migrations")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	userRepo := repos.NewUserRepository(db)
	clientRepo := repos.NewClientRepository(db)
	projectRepo := repos.NewProjectRepository(db)
	stakeholderRepo := repos.NewStakeholderRepository(db)
	interviewRepo := repos.NewInterviewRepository(db)
	configRepo := repos.NewConfigRepository(db)

	return &TestSetup{
		DB:           db,
		Users:        NewUserService(userRepo),
		Clients:      NewClientService(clientRepo),
		Projects:     NewProjectService(projectRepo, clientRepo, stakeholderRepo),
		Stakeholders: NewStakeholderService(stakeholderRepo, clientRepo),
		Interviews:   NewInterviewService(interviewRepo, clientRepo, projectRepo, stakeholderRepo),
		Configs:      NewConfigService(configRepo, clientRepo, projectRepo),
		ctx:          context.Background(),
	}
}

func (ts *TestSetup) client(t *testing.T, name, code string) *models.Client {
	t.Helper()
	c := &models.Client{Name: name, ClientCode: code}
	require.NoError(t, ts.Clients.Create(ts.ctx, c))
	return c
}

func (ts *TestSetup) project(t *testing.T, clientID, name string, stakeholders ...string) *models.Project {
	t.Helper()
	p := &models.Project{Name: name, ClientID: clientID, StakeholderIDs: stakeholders}
	require.NoError(t, ts.Projects.Create(ts.ctx, p))
	return p
}

func (ts *TestSetup) stakeholder(t *testing.T, clientID string, name string) *models.Stakeholder {
	t.Helper()
	st := &models.Stakeholder{Name: name, ClientID: &clientID}
	require.NoError(t, ts.Stakeholders.Create(ts.ctx, st))
	return st
}
