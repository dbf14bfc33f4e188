// Package app assembles the API server
package app

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/hasnain-nisan/admindash/internal/db/repos"
	"github.com/hasnain-nisan/admindash/internal/logger"
	"github.com/hasnain-nisan/admindash/internal/metrics"
	"github.com/hasnain-nisan/admindash/internal/services"
	"github.com/hasnain-nisan/admindash/internal/types"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/handlers"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/middleware"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/routes"
)

// Options configures the API server
type Options struct {
	DB *gorm.DB
	// JWTSecret verifies bearer tokens; empty disables authorization
	JWTSecret string
	// Metrics enables request metrics and GET /metrics when set
	Metrics *metrics.Metrics
}

// NewServices wires the repositories and services over db
func NewServices(db *gorm.DB) handlers.Services {
	users := repos.NewUserRepository(db)
	clients := repos.NewClientRepository(db)
	projects := repos.NewProjectRepository(db)
	stakeholders := repos.NewStakeholderRepository(db)
	interviews := repos.NewInterviewRepository(db)
	configs := repos.NewConfigRepository(db)

	return handlers.Services{
		Users:        services.NewUserService(users),
		Clients:      services.NewClientService(clients),
		Projects:     services.NewProjectService(projects, clients, stakeholders),
		Stakeholders: services.NewStakeholderService(stakeholders, clients),
		Interviews:   services.NewInterviewService(interviews, clients, projects, stakeholders),
		Configs:      services.NewConfigService(configs, clients, projects),
	}
}

// NewHandlers creates the handler of every resource
func NewHandlers(s handlers.Services) routes.Handlers {
	api := handlers.NewAPIHandler(s)
	return routes.Handlers{
		Users:        handlers.NewUserHandler(api),
		Clients:      handlers.NewClientHandler(api),
		Projects:     handlers.NewProjectHandler(api),
		Stakeholders: handlers.NewStakeholderHandler(api),
		Interviews:   handlers.NewInterviewHandler(api),
		Configs:      handlers.NewConfigHandler(api),
	}
}

// New builds the fiber app serving the v1 API
func New(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New(), requestid.New())
	if opts.Metrics != nil {
		app.Use(middleware.Metrics(opts.Metrics))
	}
	app.Use(middleware.Logger())
	app.Use(routes.APIv1Prefix, middleware.Permissions(opts.JWTSecret))

	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(
			promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{}),
		)).Name(routes.Metrics)
	}
	routes.RegisterRoutes(app, NewHandlers(NewServices(opts.DB)), middleware.RequireScope)

	return app
}

// errorHandler renders errors that escaped the handlers, such as unmatched
// routes and recovered panics, as an ErrorResponse
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code, msg = e.Code, e.Message
	}
	if code >= fiber.StatusInternalServerError {
		logger.ErrorWithFields("Unhandled error", map[string]interface{}{
			"error":  err.Error(),
			"method": c.Method(),
			"path":   c.Path(),
		})
	}
	resp := types.FromStatus(code, msg)
	return c.Status(resp.Status).JSON(resp)
}
