package handlers

import (
	"strings"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

// UserCreateParams defines the parameters for creating a user
type UserCreateParams struct {
	Name         string   `json:"name" validate:"required,max=200"`
	Email        string   `json:"email" validate:"required,email"`
	Role         string   `json:"role,omitempty" validate:"omitempty,role"`
	AccessScopes []string `json:"accessScopes,omitempty" validate:"omitempty,dive,scope"`
}

func (p *UserCreateParams) toModel() *models.User {
	role, _ := models.ParseUserRole(p.Role)
	return &models.User{
		Name:         strings.TrimSpace(p.Name),
		Email:        p.Email,
		Role:         role,
		AccessScopes: p.AccessScopes,
	}
}

// UserUpdateParams defines the parameters for updating a user. Nil fields,
// including a null accessScopes list, are left unchanged.
type UserUpdateParams struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email        *string  `json:"email,omitempty" validate:"omitempty,email"`
	Role         *string  `json:"role,omitempty" validate:"omitempty,role"`
	AccessScopes []string `json:"accessScopes" validate:"omitempty,dive,scope"`
}

func (p *UserUpdateParams) apply(u *models.User) {
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role, _ = models.ParseUserRole(*p.Role)
	}
	if p.AccessScopes != nil {
		u.AccessScopes = p.AccessScopes
	}
}
