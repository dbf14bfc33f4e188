// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/handlers"
)

/*

Routes are registered per resource, in GET, POST, PATCH, DELETE order. Static
paths (e.g. /:id/versions) go before the bare param path so fiber does not read
the slug as an id. Route names are "<resource>.<action>".

*/

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Actions used in route names
const (
	ActionList     = "list"
	ActionGet      = "get"
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionRestore  = "restore"
	ActionVersions = "versions"
)

// Other route names
const (
	HealthCheck = "HealthCheck"
	Metrics     = "Metrics"
)

// Name returns the route name of action on resource
func Name(resource, action string) string {
	return resource + "." + action
}

// Resource is the set of handlers behind one CRUD resource
type Resource interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
	Restore(c *fiber.Ctx) error
}

// Handlers groups the handlers of every resource
type Handlers struct {
	Users        *handlers.UserHandler
	Clients      *handlers.ClientHandler
	Projects     *handlers.ProjectHandler
	Stakeholders *handlers.StakeholderHandler
	Interviews   *handlers.InterviewHandler
	Configs      *handlers.ConfigHandler
}

// Guard returns the middleware that requires scope. A nil Guard registers
// routes without checks.
type Guard func(scope string) fiber.Handler

// routeCache stores extracted routes for use prior to compilation
var (
	routeCache     map[string]string
	routeCacheMu   sync.RWMutex
	routeCacheInit sync.Once
)

// RegisterRoutes configures all the v1 routes
func RegisterRoutes(app *fiber.App, h Handlers, guard Guard) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	v1 := app.Group(APIv1Prefix)

	registerResource(v1, permissions.Users, h.Users, guard, nil)
	registerResource(v1, permissions.Clients, h.Clients, guard, nil)
	registerResource(v1, permissions.Projects, h.Projects, guard, nil)
	registerResource(v1, permissions.Stakeholders, h.Stakeholders, guard, nil)
	registerResource(v1, permissions.Interviews, h.Interviews, guard, nil)
	registerResource(v1, permissions.Configs, h.Configs, guard, func(g fiber.Router, read func(fiber.Handler) []fiber.Handler) {
		g.Get("/:id/versions", read(h.Configs.ListVersions)...).Name(Name(permissions.Configs, ActionVersions))
	})
}

// registerResource mounts the CRUD routes of resource. extra registers
// additional static paths before the /:id routes.
func registerResource(v1 fiber.Router, resource string, r Resource, guard Guard, extra func(fiber.Router, func(fiber.Handler) []fiber.Handler)) {
	guarded := func(action permissions.Action) func(fiber.Handler) []fiber.Handler {
		return func(h fiber.Handler) []fiber.Handler {
			if guard == nil {
				return []fiber.Handler{h}
			}
			return []fiber.Handler{guard(permissions.Scope(resource, action)), h}
		}
	}
	read := guarded(permissions.Read)
	write := guarded(permissions.Write)

	g := v1.Group("/" + resource)
	g.Get("/", read(r.List)...).Name(Name(resource, ActionList))
	if extra != nil {
		extra(g, read)
	}
	g.Get("/:id", read(r.Get)...).Name(Name(resource, ActionGet))
	g.Post("/", write(r.Create)...).Name(Name(resource, ActionCreate))
	g.Post("/:id/restore", write(r.Restore)...).Name(Name(resource, ActionRestore))
	g.Patch("/:id", write(r.Update)...).Name(Name(resource, ActionUpdate))
	g.Delete("/:id", write(r.Delete)...).Name(Name(resource, ActionDelete))
}

// initRouteCache initializes the route cache by creating a mock app and extracting routes
func initRouteCache() {
	routeCacheInit.Do(func() {
		cache := make(map[string]string)

		app := fiber.New()
		api := &handlers.APIHandler{}
		RegisterRoutes(app, Handlers{
			Users:        handlers.NewUserHandler(api),
			Clients:      handlers.NewClientHandler(api),
			Projects:     handlers.NewProjectHandler(api),
			Stakeholders: handlers.NewStakeholderHandler(api),
			Interviews:   handlers.NewInterviewHandler(api),
			Configs:      handlers.NewConfigHandler(api),
		}, nil)

		for _, route := range app.GetRoutes() {
			if route.Name != "" {
				cache[route.Name] = route.Path
			}
		}

		routeCacheMu.Lock()
		routeCache = cache
		routeCacheMu.Unlock()
	})
}

// GetRoute returns the route pattern for the given route name
func GetRoute(name string) string {
	initRouteCache()

	routeCacheMu.RLock()
	defer routeCacheMu.RUnlock()
	return routeCache[name]
}

// BuildURL builds a URL for the given route name and parameters
func BuildURL(routeName string, params map[string]string, queryParams url.Values) string {
	route := GetRoute(routeName)
	if route == "" {
		return ""
	}

	for param, value := range params {
		route = strings.ReplaceAll(route, ":"+param, url.PathEscape(value))
	}

	// Remove trailing slash if it's a base endpoint with no parameters
	if strings.HasSuffix(route, "/") && !strings.Contains(route, ":") {
		route = strings.TrimSuffix(route, "/")
	}

	if len(queryParams) > 0 {
		route = fmt.Sprintf("%s?%s", route, queryParams.Encode())
	}

	return route
}

// HealthCheckURL returns the URL for the health check endpoint
func HealthCheckURL() string {
	return BuildURL(HealthCheck, nil, nil)
}

// ListURL returns the URL for listing resource
func ListURL(resource string, queryParams url.Values) string {
	return BuildURL(Name(resource, ActionList), nil, queryParams)
}

// GetURL returns the URL of one row of resource
func GetURL(resource, id string) string {
	return BuildURL(Name(resource, ActionGet), map[string]string{"id": id}, nil)
}

// CreateURL returns the URL for creating a row of resource
func CreateURL(resource string) string {
	return BuildURL(Name(resource, ActionCreate), nil, nil)
}

// UpdateURL returns the URL for updating a row of resource
func UpdateURL(resource, id string) string {
	return BuildURL(Name(resource, ActionUpdate), map[string]string{"id": id}, nil)
}

// DeleteURL returns the URL for deleting a row of resource
func DeleteURL(resource, id string) string {
	return BuildURL(Name(resource, ActionDelete), map[string]string{"id": id}, nil)
}

// RestoreURL returns the URL for restoring a deleted row of resource
func RestoreURL(resource, id string) string {
	return BuildURL(Name(resource, ActionRestore), map[string]string{"id": id}, nil)
}

// ConfigVersionsURL returns the URL listing the previous versions of a config
func ConfigVersionsURL(id string, queryParams url.Values) string {
	return BuildURL(Name(permissions.Configs, ActionVersions), map[string]string{"id": id}, queryParams)
}
