package services

import (
	"context"
	"strings"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/db/repos"
	"github.com/hasnain-nisan/admindash/internal/events"
)

// Client provides business logic for client operations
type Client struct {
	entity[models.Client]
	repo *repos.ClientRepository
}

// NewClientService creates a new client service instance
func NewClientService(repo *repos.ClientRepository) *Client {
	return &Client{
		entity: entity[models.Client]{repo: repo.Repository, name: "client", notFound: ErrClientNotFound},
		repo:   repo,
	}
}

// Create creates a new client. Client codes are stored upper case and must be unique
func (s *Client) Create(ctx context.Context, client *models.Client) error {
	normalizeClient(client)
	if err := validateClient(client); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return conflict(err)
	}
	s.publish(ctx, events.EventCreated, client.ID)
	return nil
}

// Update applies changes to an active client
func (s *Client) Update(ctx context.Context, id string, apply func(*models.Client)) (*models.Client, error) {
	client, err := s.active(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(client)
	normalizeClient(client)
	if err := validateClient(client); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, conflict(err)
	}
	s.publish(ctx, events.EventUpdated, client.ID)
	return client, nil
}

func normalizeClient(c *models.Client) {
	c.Name = strings.TrimSpace(c.Name)
	c.ClientCode = strings.ToUpper(strings.TrimSpace(c.ClientCode))
}

func validateClient(c *models.Client) error {
	if c.Name == "" {
		return invalid("name is required")
	}
	if c.ClientCode == "" {
		return invalid("client code is required")
	}
	return nil
}
