package handlers

import "github.com/hasnain-nisan/admindash/internal/db/models"

// StakeholderCreateParams defines the parameters for creating a stakeholder.
// ClientID may be omitted for stakeholders without a client.
type StakeholderCreateParams struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Email    string  `json:"email,omitempty" validate:"omitempty,email"`
	Role     string  `json:"role,omitempty" validate:"max=100"`
	ClientID *string `json:"clientId,omitempty"`
}

func (p *StakeholderCreateParams) toModel() *models.Stakeholder {
	return &models.Stakeholder{
		Name:     p.Name,
		Email:    p.Email,
		Role:     p.Role,
		ClientID: p.ClientID,
	}
}

// StakeholderUpdateParams defines the parameters for updating a stakeholder.
// An empty ClientID detaches the stakeholder from its client.
type StakeholderUpdateParams struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     *string `json:"role,omitempty" validate:"omitempty,max=100"`
	ClientID *string `json:"clientId,omitempty"`
}

func (p *StakeholderUpdateParams) apply(s *models.Stakeholder) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Role != nil {
		s.Role = *p.Role
	}
	if p.ClientID != nil {
		s.ClientID = p.ClientID
	}
}
