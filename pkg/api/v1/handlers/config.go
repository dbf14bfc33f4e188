package handlers

import (
	"context"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

var configList = listSchema{
	sort: map[string]string{
		"name":      "name",
		"version":   "version",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	filters: map[string]string{"clientId": "client_id", "projectId": "project_id"},
	search:  map[string]string{"name": "name"},
}

// ConfigHandler handles HTTP requests for config operations
type ConfigHandler struct {
	*APIHandler
}

// NewConfigHandler creates a new ConfigHandler instance
func NewConfigHandler(api *APIHandler) *ConfigHandler {
	return &ConfigHandler{APIHandler: api}
}

// List returns one page of configs
func (h *ConfigHandler) List(c *fiber.Ctx) error {
	return respondList(c, configList, h.configs.List)
}

// Get returns a config by id
func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	return getByID(c, h.configs.Get)
}

// Create creates a config at version 1
func (h *ConfigHandler) Create(c *fiber.Ctx) error {
	return create(c, (*ConfigCreateParams).toModel, h.configs.Create)
}

// Update updates a config and bumps its version
func (h *ConfigHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, ErrMsgIDRequired)
	}
	var params ConfigUpdateParams
	if err := parseBody(c, &params); err != nil {
		return badRequest(c, err.Error())
	}
	cfg, err := h.configs.Update(c.UserContext(), id, params.Version, func(cfg *models.Config) {
		params.apply(cfg)
	})
	if err != nil {
		return respondWithError(c, err, ErrMsgUpdateFailed)
	}
	return c.JSON(cfg)
}

// Delete soft-deletes a config
func (h *ConfigHandler) Delete(c *fiber.Ctx) error {
	return deleteByID(c, h.configs.Delete)
}

// Restore restores a deleted config
func (h *ConfigHandler) Restore(c *fiber.Ctx) error {
	return restoreByID(c, h.configs.Restore, h.configs.Get)
}

// ListVersions returns the previous versions of a config, newest first
func (h *ConfigHandler) ListVersions(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, ErrMsgIDRequired)
	}
	return respondList(c, listSchema{}, func(ctx context.Context, opts *models.ListOptions) ([]models.ConfigVersion, int64, error) {
		return h.configs.ListVersions(ctx, id, opts.Limit, opts.Offset)
	})
}
