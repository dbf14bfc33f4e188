package services

import (
	"context"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/db/repos"
	"github.com/hasnain-nisan/admindash/internal/events"
	"github.com/hasnain-nisan/admindash/internal/permissions"
)

// entity provides the operations every entity service shares
type entity[T any] struct {
	repo     *repos.Repository[T]
	name     string
	notFound error
}

// Get retrieves a row by id, including soft-deleted rows
func (s entity[T]) Get(ctx context.Context, id string) (*T, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(s.notFound, err)
	}
	return v, nil
}

// List returns one page of rows and the total matching opts
func (s entity[T]) List(ctx context.Context, opts *models.ListOptions) ([]T, int64, error) {
	return s.repo.List(ctx, opts)
}

// Delete soft-deletes the row with id
func (s entity[T]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(s.notFound, err)
	}
	s.publish(ctx, events.EventDeleted, id)
	return nil
}

// Restore brings back a soft-deleted row
func (s entity[T]) Restore(ctx context.Context, id string) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return notFound(s.notFound, err)
	}
	s.publish(ctx, events.EventRestored, id)
	return nil
}

func (s entity[T]) active(ctx context.Context, id string) (*T, error) {
	v, err := s.repo.GetActive(ctx, id)
	if err != nil {
		return nil, notFound(s.notFound, err)
	}
	return v, nil
}

func (s entity[T]) publish(ctx context.Context, typ events.EventType, id string) {
	events.Publish(events.Event{
		Type:   typ,
		Entity: s.name,
		ID:     id,
		Actor:  permissions.FromContext(ctx).Subject,
	})
}
