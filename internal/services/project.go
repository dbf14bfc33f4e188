package services

import (
	"context"
	"strings"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/db/repos"
	"github.com/hasnain-nisan/admindash/internal/events"
)

// Project handles project-related operations
type Project struct {
	entity[models.Project]
	repo *repos.ProjectRepository
	refs references
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(repo *repos.ProjectRepository, clients *repos.ClientRepository, stakeholders *repos.StakeholderRepository) *Project {
	return &Project{
		entity: entity[models.Project]{repo: repo.Repository, name: "project", notFound: ErrProjectNotFound},
		repo:   repo,
		refs:   references{clients: clients, projects: repo, stakeholders: stakeholders},
	}
}

// Create creates a new project for an active client
func (s *Project) Create(ctx context.Context, project *models.Project) error {
	if err := s.validate(ctx, project); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return conflict(err)
	}
	s.publish(ctx, events.EventCreated, project.ID)
	return nil
}

// Update applies changes to an active project
func (s *Project) Update(ctx context.Context, id string, apply func(*models.Project)) (*models.Project, error) {
	project, err := s.active(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(project)
	if project.Client != nil && project.Client.ID != project.ClientID {
		project.Client = nil
	}
	if err := s.validate(ctx, project); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, conflict(err)
	}
	s.publish(ctx, events.EventUpdated, project.ID)
	return project, nil
}

func (s *Project) validate(ctx context.Context, project *models.Project) error {
	project.Name = strings.TrimSpace(project.Name)
	if project.Name == "" {
		return invalid("name is required")
	}
	if err := s.refs.client(ctx, project.ClientID); err != nil {
		return err
	}
	ids, err := s.refs.checkStakeholders(ctx, project.ClientID, project.StakeholderIDs)
	if err != nil {
		return err
	}
	project.StakeholderIDs = ids
	return nil
}
