package handlers

import (
	"strconv"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/pkg/listing"
)

var userList = listSchema{
	sort:    map[string]string{"name": "name", "email": "email", "role": "role", "createdAt": "created_at"},
	search:  map[string]string{"name": "name", "email": "email"},
}

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	*APIHandler
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(api *APIHandler) *UserHandler {
	return &UserHandler{APIHandler: api}
}

// List returns one page of users
func (h *UserHandler) List(c *fiber.Ctx) error {
	list := lister[models.User](h.users.List)
	// roles are stored by ordinal
	if name := c.Query("role"); !listing.IsSentinel(name) {
		role, err := models.ParseUserRole(name)
		if err != nil {
			return badRequest(c, err.Error())
		}
		list = withFilter(list, "role", strconv.Itoa(int(role)))
	}
	return respondList(c, userList, list)
}

// Get returns a user by id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	return getByID(c, h.users.Get)
}

// Create creates a user
func (h *UserHandler) Create(c *fiber.Ctx) error {
	return create(c, (*UserCreateParams).toModel, h.users.Create)
}

// Update updates a user
func (h *UserHandler) Update(c *fiber.Ctx) error {
	return update(c, (*UserUpdateParams).apply, h.users.Update)
}

// Delete soft-deletes a user
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	return deleteByID(c, h.users.Delete)
}

// Restore restores a deleted user
func (h *UserHandler) Restore(c *fiber.Ctx) error {
	return restoreByID(c, h.users.Restore, h.users.Get)
}
