package handlers

import fiber "github.com/gofiber/fiber/v2"

var projectList = listSchema{
	sort:    map[string]string{"name": "name", "createdAt": "created_at"},
	filters: map[string]string{"clientId": "client_id"},
	search:  map[string]string{"name": "name"},
}

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	*APIHandler
}

// NewProjectHandler creates a new ProjectHandler instance
func NewProjectHandler(api *APIHandler) *ProjectHandler {
	return &ProjectHandler{APIHandler: api}
}

// List returns one page of projects
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	return respondList(c, projectList, h.projects.List)
}

// Get returns a project by id
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	return getByID(c, h.projects.Get)
}

// Create creates a project
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	return create(c, (*ProjectCreateParams).toModel, h.projects.Create)
}

// Update updates a project
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	return update(c, (*ProjectUpdateParams).apply, h.projects.Update)
}

// Delete soft-deletes a project
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	return deleteByID(c, h.projects.Delete)
}

// Restore restores a deleted project
func (h *ProjectHandler) Restore(c *fiber.Ctx) error {
	return restoreByID(c, h.projects.Restore, h.projects.Get)
}
