package handlers

import "github.com/hasnain-nisan/admindash/internal/db/models"

// ProjectCreateParams defines the parameters for creating a project
type ProjectCreateParams struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Description    string   `json:"description,omitempty"`
	ClientID       string   `json:"clientId" validate:"required"`
	StakeholderIDs []string `json:"stakeholderIds,omitempty" validate:"omitempty,dive,required"`
}

func (p *ProjectCreateParams) toModel() *models.Project {
	return &models.Project{
		Name:           p.Name,
		Description:    p.Description,
		ClientID:       p.ClientID,
		StakeholderIDs: p.StakeholderIDs,
	}
}

// ProjectUpdateParams defines the parameters for updating a project. A null
// stakeholder list leaves it unchanged and an empty one clears it.
type ProjectUpdateParams struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description    *string  `json:"description,omitempty"`
	ClientID       *string  `json:"clientId,omitempty" validate:"omitempty,min=1"`
	StakeholderIDs []string `json:"stakeholderIds" validate:"omitempty,dive,required"`
}

func (p *ProjectUpdateParams) apply(pr *models.Project) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.ClientID != nil && *p.ClientID != pr.ClientID {
		pr.ClientID = *p.ClientID
		// stakeholders belong to the old client
		pr.StakeholderIDs = nil
	}
	if p.StakeholderIDs != nil {
		pr.StakeholderIDs = p.StakeholderIDs
	}
}
