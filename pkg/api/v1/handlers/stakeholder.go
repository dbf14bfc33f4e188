package handlers

import fiber "github.com/gofiber/fiber/v2"

var stakeholderList = listSchema{
	sort:    map[string]string{"name": "name", "email": "email", "createdAt": "created_at"},
	filters: map[string]string{"clientId": "client_id"},
	search:  map[string]string{"name": "name", "email": "email"},
}

// StakeholderHandler handles HTTP requests for stakeholder operations
type StakeholderHandler struct {
	*APIHandler
}

// NewStakeholderHandler creates a new StakeholderHandler instance
func NewStakeholderHandler(api *APIHandler) *StakeholderHandler {
	return &StakeholderHandler{APIHandler: api}
}

// List returns one page of stakeholders
func (h *StakeholderHandler) List(c *fiber.Ctx) error {
	return respondList(c, stakeholderList, h.stakeholders.List)
}

// Get returns a stakeholder by id
func (h *StakeholderHandler) Get(c *fiber.Ctx) error {
	return getByID(c, h.stakeholders.Get)
}

// Create creates a stakeholder
func (h *StakeholderHandler) Create(c *fiber.Ctx) error {
	return create(c, (*StakeholderCreateParams).toModel, h.stakeholders.Create)
}

// Update updates a stakeholder
func (h *StakeholderHandler) Update(c *fiber.Ctx) error {
	return update(c, (*StakeholderUpdateParams).apply, h.stakeholders.Update)
}

// Delete soft-deletes a stakeholder
func (h *StakeholderHandler) Delete(c *fiber.Ctx) error {
	return deleteByID(c, h.stakeholders.Delete)
}

// Restore restores a deleted stakeholder
func (h *StakeholderHandler) Restore(c *fiber.Ctx) error {
	return restoreByID(c, h.stakeholders.Restore, h.stakeholders.Get)
}
