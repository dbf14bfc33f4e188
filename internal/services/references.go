package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hasnain-nisan/admindash/internal/db/repos"
)

// references validates the links between clients, projects and stakeholders
type references struct {
	clients      *repos.ClientRepository
	projects     *repos.ProjectRepository
	stakeholders *repos.StakeholderRepository
}

func (r references) client(ctx context.Context, clientID string) error {
	if clientID == "" {
		return invalid("client id is required")
	}
	_, err := r.clients.GetActive(ctx, clientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invalid("client %s does not exist", clientID)
	}
	return err
}

func (r references) project(ctx context.Context, clientID, projectID string) error {
	if projectID == "" {
		return invalid("project id is required")
	}
	p, err := r.projects.GetActive(ctx, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invalid("project %s does not exist", projectID)
	}
	if err != nil {
		return err
	}
	if p.ClientID != clientID {
		return invalid("project %s does not belong to client %s", projectID, clientID)
	}
	return nil
}

// checkStakeholders checks every id is an active stakeholder of clientID and
// returns the ids without duplicates, in their original order
func (r references) checkStakeholders(ctx context.Context, clientID string, ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return unique, nil
	}

	n, err := r.stakeholders.CountForClient(ctx, clientID, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to check stakeholders: %w", err)
	}
	if int(n) != len(unique) {
		return nil, invalid("stakeholders must be active stakeholders of client %s", clientID)
	}
	return unique, nil
}
