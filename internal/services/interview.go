package services

import (
	"context"
	"strings"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/db/repos"
	"github.com/hasnain-nisan/admindash/internal/events"
)

// Interview handles discovery interview operations
type Interview struct {
	entity[models.Interview]
	repo *repos.InterviewRepository
	refs references
}

// NewInterviewService creates a new interview service instance
func NewInterviewService(
	repo *repos.InterviewRepository,
	clients *repos.ClientRepository,
	projects *repos.ProjectRepository,
	stakeholders *repos.StakeholderRepository,
) *Interview {
	return &Interview{
		entity: entity[models.Interview]{repo: repo.Repository, name: "interview", notFound: ErrInterviewNotFound},
		repo:   repo,
		refs:   references{clients: clients, projects: projects, stakeholders: stakeholders},
	}
}

// Create records a new interview
func (s *Interview) Create(ctx context.Context, interview *models.Interview) error {
	if err := s.validate(ctx, interview); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, interview); err != nil {
		return conflict(err)
	}
	s.publish(ctx, events.EventCreated, interview.ID)
	return nil
}

// Update applies changes to an active interview
func (s *Interview) Update(ctx context.Context, id string, apply func(*models.Interview)) (*models.Interview, error) {
	interview, err := s.active(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(interview)
	interview.Client, interview.Project = nil, nil
	if err := s.validate(ctx, interview); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, interview); err != nil {
		return nil, conflict(err)
	}
	s.publish(ctx, events.EventUpdated, interview.ID)
	return interview, nil
}

func (s *Interview) validate(ctx context.Context, interview *models.Interview) error {
	interview.Name = strings.TrimSpace(interview.Name)
	if interview.Name == "" {
		return invalid("name is required")
	}
	if interview.Date.IsZero() {
		return invalid("date is required")
	}
	if err := s.refs.client(ctx, interview.ClientID); err != nil {
		return err
	}
	if err := s.refs.project(ctx, interview.ClientID, interview.ProjectID); err != nil {
		return err
	}
	ids, err := s.refs.checkStakeholders(ctx, interview.ClientID, interview.StakeholderIDs)
	if err != nil {
		return err
	}
	interview.StakeholderIDs = ids
	return nil
}
