package handlers

import (
	"time"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

// InterviewCreateParams defines the parameters for recording an interview
type InterviewCreateParams struct {
	Name           string    `json:"name" validate:"required,max=200"`
	Date           time.Time `json:"date" validate:"required"`
	Notes          string    `json:"notes,omitempty"`
	ClientID       string    `json:"clientId" validate:"required"`
	ProjectID      string    `json:"projectId" validate:"required"`
	StakeholderIDs []string  `json:"stakeholderIds,omitempty" validate:"omitempty,dive,required"`
}

func (p *InterviewCreateParams) toModel() *models.Interview {
	return &models.Interview{
		Name:           p.Name,
		Date:           p.Date,
		Notes:          p.Notes,
		ClientID:       p.ClientID,
		ProjectID:      p.ProjectID,
		StakeholderIDs: p.StakeholderIDs,
	}
}

// InterviewUpdateParams defines the parameters for updating an interview.
// Changing the client without naming a project fails validation, since the
// old project belongs to the old client. A null stakeholder list leaves it
// unchanged.
type InterviewUpdateParams struct {
	Name           *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Date           *time.Time `json:"date,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	ClientID       *string    `json:"clientId,omitempty" validate:"omitempty,min=1"`
	ProjectID      *string    `json:"projectId,omitempty" validate:"omitempty,min=1"`
	StakeholderIDs []string   `json:"stakeholderIds" validate:"omitempty,dive,required"`
}

func (p *InterviewUpdateParams) apply(i *models.Interview) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Date != nil {
		i.Date = *p.Date
	}
	if p.Notes != nil {
		i.Notes = *p.Notes
	}
	if p.ClientID != nil && *p.ClientID != i.ClientID {
		i.ClientID = *p.ClientID
		i.StakeholderIDs = nil
	}
	if p.ProjectID != nil {
		i.ProjectID = *p.ProjectID
	}
	if p.StakeholderIDs != nil {
		i.StakeholderIDs = p.StakeholderIDs
	}
}
