package handlers

import fiber "github.com/gofiber/fiber/v2"

var interviewList = listSchema{
	sort:    map[string]string{"name": "name", "date": "date", "createdAt": "created_at"},
	filters: map[string]string{"clientId": "client_id", "projectId": "project_id"},
	search:  map[string]string{"name": "name"},
}

// InterviewHandler handles HTTP requests for interview operations
type InterviewHandler struct {
	*APIHandler
}

// NewInterviewHandler creates a new InterviewHandler instance
func NewInterviewHandler(api *APIHandler) *InterviewHandler {
	return &InterviewHandler{APIHandler: api}
}

// List returns one page of interviews
func (h *InterviewHandler) List(c *fiber.Ctx) error {
	return respondList(c, interviewList, h.interviews.List)
}

// Get returns an interview by id
func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	return getByID(c, h.interviews.Get)
}

// Create records an interview
func (h *InterviewHandler) Create(c *fiber.Ctx) error {
	return create(c, (*InterviewCreateParams).toModel, h.interviews.Create)
}

// Update updates an interview
func (h *InterviewHandler) Update(c *fiber.Ctx) error {
	return update(c, (*InterviewUpdateParams).apply, h.interviews.Update)
}

// Delete soft-deletes an interview
func (h *InterviewHandler) Delete(c *fiber.Ctx) error {
	return deleteByID(c, h.interviews.Delete)
}

// Restore restores a deleted interview
func (h *InterviewHandler) Restore(c *fiber.Ctx) error {
	return restoreByID(c, h.interviews.Restore, h.interviews.Get)
}
