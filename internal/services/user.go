package services

import (
	"context"
	"errors"
	"strings"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/db/repos"
	"github.com/hasnain-nisan/admindash/internal/events"
	"github.com/hasnain-nisan/admindash/internal/permissions"
)

// User provides business logic for user operations
type User struct {
	entity[models.User]
	repo *repos.UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(repo *repos.UserRepository) *User {
	return &User{
		entity: entity[models.User]{repo: repo.Repository, name: "user", notFound: ErrUserNotFound},
		repo:   repo,
	}
}

// Create creates a new user
func (s *User) Create(ctx context.Context, user *models.User) error {
	if err := validateUser(user); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repos.ErrEmailExists) {
			return errors.Join(ErrConflict, err)
		}
		return conflict(err)
	}
	s.publish(ctx, events.EventCreated, user.ID)
	return nil
}

// Update applies changes to an active user
func (s *User) Update(ctx context.Context, id string, apply func(*models.User)) (*models.User, error) {
	user, err := s.active(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := user.Email
	apply(user)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := validateUser(user); err != nil {
		return nil, err
	}

	if user.Email != previous {
		if other, err := s.repo.GetByEmail(ctx, user.Email); err == nil && other.ID != user.ID {
			return nil, errors.Join(ErrConflict, repos.ErrEmailExists)
		}
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, conflict(err)
	}
	s.publish(ctx, events.EventUpdated, user.ID)
	return user, nil
}

// GetByEmail retrieves a user by email
func (s *User) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, notFound(ErrUserNotFound, err)
	}
	return user, nil
}

func validateUser(user *models.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return invalid("name is required")
	}
	if user.Email == "" {
		return invalid("email is required")
	}
	if user.Role < models.UserRoleViewer || user.Role > models.UserRoleAdmin {
		return invalid("unknown role %d", user.Role)
	}
	for _, scope := range user.AccessScopes {
		if !permissions.IsKnownScope(scope) {
			return invalid("unknown access scope %q", scope)
		}
	}
	return nil
}
