package services

import (
	"context"
	"strings"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/db/repos"
	"github.com/hasnain-nisan/admindash/internal/events"
)

// Stakeholder handles stakeholder operations. A stakeholder may exist
// without a client.
type Stakeholder struct {
	entity[models.Stakeholder]
	repo *repos.StakeholderRepository
	refs references
}

// NewStakeholderService creates a new stakeholder service instance
func NewStakeholderService(repo *repos.StakeholderRepository, clients *repos.ClientRepository) *Stakeholder {
	return &Stakeholder{
		entity: entity[models.Stakeholder]{repo: repo.Repository, name: "stakeholder", notFound: ErrStakeholderNotFound},
		repo:   repo,
		refs:   references{clients: clients, stakeholders: repo},
	}
}

// Create creates a new stakeholder
func (s *Stakeholder) Create(ctx context.Context, st *models.Stakeholder) error {
	if err := s.validate(ctx, st); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return conflict(err)
	}
	s.publish(ctx, events.EventCreated, st.ID)
	return nil
}

// Update applies changes to an active stakeholder
func (s *Stakeholder) Update(ctx context.Context, id string, apply func(*models.Stakeholder)) (*models.Stakeholder, error) {
	st, err := s.active(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(st)
	if st.ClientID == nil || (st.Client != nil && st.Client.ID != *st.ClientID) {
		st.Client = nil
	}
	if err := s.validate(ctx, st); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, conflict(err)
	}
	s.publish(ctx, events.EventUpdated, st.ID)
	return st, nil
}

func (s *Stakeholder) validate(ctx context.Context, st *models.Stakeholder) error {
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" {
		return invalid("name is required")
	}
	if st.ClientID != nil && *st.ClientID == "" {
		st.ClientID = nil
	}
	if st.ClientID != nil {
		return s.refs.client(ctx, *st.ClientID)
	}
	return nil
}
