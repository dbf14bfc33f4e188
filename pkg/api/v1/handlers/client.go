package handlers

import fiber "github.com/gofiber/fiber/v2"

var clientList = listSchema{
	sort:   map[string]string{"name": "name", "clientCode": "client_code", "createdAt": "created_at"},
	search: map[string]string{"name": "name", "clientCode": "client_code"},
}

// ClientHandler handles HTTP requests for client operations
type ClientHandler struct {
	*APIHandler
}

// NewClientHandler creates a new ClientHandler instance
func NewClientHandler(api *APIHandler) *ClientHandler {
	return &ClientHandler{APIHandler: api}
}

// List returns one page of clients
func (h *ClientHandler) List(c *fiber.Ctx) error {
	return respondList(c, clientList, h.clients.List)
}

// Get returns a client by id
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	return getByID(c, h.clients.Get)
}

// Create creates a client
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	return create(c, (*ClientCreateParams).toModel, h.clients.Create)
}

// Update updates a client
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	return update(c, (*ClientUpdateParams).apply, h.clients.Update)
}

// Delete soft-deletes a client
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	return deleteByID(c, h.clients.Delete)
}

// Restore restores a deleted client
func (h *ClientHandler) Restore(c *fiber.Ctx) error {
	return restoreByID(c, h.clients.Restore, h.clients.Get)
}
