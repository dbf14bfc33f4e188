package handlers

import "github.com/hasnain-nisan/admindash/internal/services"

// Services groups the services the handlers call
type Services struct {
	Users        *services.User
	Clients      *services.Client
	Projects     *services.Project
	Stakeholders *services.Stakeholder
	Interviews   *services.Interview
	Configs      *services.Config
}

// APIHandler is a handler for the API
type APIHandler struct {
	users        *services.User
	clients      *services.Client
	projects     *services.Project
	stakeholders *services.Stakeholder
	interviews   *services.Interview
	configs      *services.Config
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(s Services) *APIHandler {
	return &APIHandler{
		users:        s.Users,
		clients:      s.Clients,
		projects:     s.Projects,
		stakeholders: s.Stakeholders,
		interviews:   s.Interviews,
		configs:      s.Configs,
	}
}
