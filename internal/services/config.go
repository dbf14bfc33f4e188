package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/db/repos"
	"github.com/hasnain-nisan/admindash/internal/events"
)

// Config handles versioned configuration records
type Config struct {
	entity[models.Config]
	repo *repos.ConfigRepository
	refs references
}

// NewConfigService creates a new config service instance
func NewConfigService(repo *repos.ConfigRepository, clients *repos.ClientRepository, projects *repos.ProjectRepository) *Config {
	return &Config{
		entity: entity[models.Config]{repo: repo.Repository, name: "config", notFound: ErrConfigNotFound},
		repo:   repo,
		refs:   references{clients: clients, projects: projects},
	}
}

// Create creates a config at version 1
func (s *Config) Create(ctx context.Context, cfg *models.Config) error {
	cfg.Version = 1
	if err := s.validate(ctx, cfg); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, cfg); err != nil {
		return conflict(err)
	}
	s.publish(ctx, events.EventCreated, cfg.ID)
	return nil
}

// Update applies changes to an active config and bumps its version. When
// version is positive it must match the stored version, otherwise the update
// fails with ErrConflict.
func (s *Config) Update(ctx context.Context, id string, version int, apply func(*models.Config)) (*models.Config, error) {
	cfg, err := s.active(ctx, id)
	if err != nil {
		return nil, err
	}
	if version > 0 && version != cfg.Version {
		return nil, errors.Join(ErrConflict, repos.ErrVersionConflict)
	}
	apply(cfg)
	cfg.Client, cfg.Project = nil, nil
	if err := s.validate(ctx, cfg); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateVersioned(ctx, cfg); err != nil {
		if errors.Is(err, repos.ErrVersionConflict) {
			return nil, errors.Join(ErrConflict, err)
		}
		return nil, notFound(ErrConfigNotFound, err)
	}
	s.publish(ctx, events.EventUpdated, cfg.ID)
	return cfg, nil
}

// ListVersions returns the stored snapshots of a config, newest first
func (s *Config) ListVersions(ctx context.Context, id string, limit, offset int) ([]models.ConfigVersion, int64, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.repo.ListVersions(ctx, id, limit, offset)
}

func (s *Config) validate(ctx context.Context, cfg *models.Config) error {
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		return invalid("name is required")
	}
	if cfg.Body != "" && !json.Valid([]byte(cfg.Body)) {
		return invalid("body must be a JSON document")
	}
	if err := s.refs.client(ctx, cfg.ClientID); err != nil {
		return err
	}
	return s.refs.project(ctx, cfg.ClientID, cfg.ProjectID)
}
