package handlers

import "github.com/hasnain-nisan/admindash/internal/db/models"

// ClientCreateParams defines the parameters for creating a client
type ClientCreateParams struct {
	Name        string `json:"name" validate:"required,max=200"`
	ClientCode  string `json:"clientCode" validate:"required,max=32"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Description string `json:"description,omitempty"`
}

func (p *ClientCreateParams) toModel() *models.Client {
	return &models.Client{
		Name:        p.Name,
		ClientCode:  p.ClientCode,
		Email:       p.Email,
		Description: p.Description,
	}
}

// ClientUpdateParams defines the parameters for updating a client
type ClientUpdateParams struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	ClientCode  *string `json:"clientCode,omitempty" validate:"omitempty,min=1,max=32"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Description *string `json:"description,omitempty"`
}

func (p *ClientUpdateParams) apply(c *models.Client) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.ClientCode != nil {
		c.ClientCode = *p.ClientCode
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
}
