package handlers

import "github.com/hasnain-nisan/admindash/internal/db/models"

// ConfigCreateParams defines the parameters for creating a config
type ConfigCreateParams struct {
	Name      string `json:"name" validate:"required,max=200"`
	ClientID  string `json:"clientId" validate:"required"`
	ProjectID string `json:"projectId" validate:"required"`
	Body      string `json:"body,omitempty" validate:"omitempty,json"`
}

func (p *ConfigCreateParams) toModel() *models.Config {
	return &models.Config{
		Name:      p.Name,
		ClientID:  p.ClientID,
		ProjectID: p.ProjectID,
		Body:      p.Body,
	}
}

// ConfigUpdateParams defines the parameters for updating a config. A positive
// Version must match the stored version.
type ConfigUpdateParams struct {
	Version   int     `json:"version,omitempty" validate:"min=0"`
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	ClientID  *string `json:"clientId,omitempty" validate:"omitempty,min=1"`
	ProjectID *string `json:"projectId,omitempty" validate:"omitempty,min=1"`
	Body      *string `json:"body,omitempty" validate:"omitempty,json"`
}

func (p *ConfigUpdateParams) apply(cfg *models.Config) {
	if p.Name != nil {
		cfg.Name = *p.Name
	}
	if p.ClientID != nil {
		cfg.ClientID = *p.ClientID
	}
	if p.ProjectID != nil {
		cfg.ProjectID = *p.ProjectID
	}
	if p.Body != nil {
		cfg.Body = *p.Body
	}
}
