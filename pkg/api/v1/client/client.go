// Package client provides the API client for the admin dashboard API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/internal/types"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/handlers"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/routes"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health Check
	HealthCheck(ctx context.Context) (types.HealthResponse, error)

	// Resources
	Users() *Resource[models.User, handlers.UserCreateParams, handlers.UserUpdateParams]
	Clients() *Resource[models.Client, handlers.ClientCreateParams, handlers.ClientUpdateParams]
	Projects() *Resource[models.Project, handlers.ProjectCreateParams, handlers.ProjectUpdateParams]
	Stakeholders() *Resource[models.Stakeholder, handlers.StakeholderCreateParams, handlers.StakeholderUpdateParams]
	Interviews() *Resource[models.Interview, handlers.InterviewCreateParams, handlers.InterviewUpdateParams]
	Configs() *ConfigResource
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration

	// Token is sent as a bearer token when set
	Token string

	// RateLimit caps requests per second; zero means unlimited
	RateLimit float64
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL   string
	timeout   time.Duration
	limiter   *rate.Limiter
	AuthToken string
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (*APIClient, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate the base URL
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &APIClient{
		baseURL:   opts.BaseURL,
		timeout:   timeout,
		AuthToken: opts.Token,
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	case http.MethodPatch:
		agent = fiber.Patch(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	agent.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if c.AuthToken != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.AuthToken)
	}

	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

type agentResult struct {
	code int
	body []byte
	errs []error
}

// doRequest sends the HTTP request and processes the response. The agent has
// no notion of a context, so a cancelled ctx abandons the request and returns
// ctx.Err() while the agent runs out its timeout in the background.
func (c *APIClient) doRequest(ctx context.Context, agent *fiber.Agent, v interface{}) error {
	done := make(chan agentResult, 1)
	go func() {
		code, body, errs := agent.Bytes()
		done <- agentResult{code: code, body: body, errs: errs}
	}()

	var res agentResult
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res = <-done:
	}

	if len(res.errs) > 0 {
		return fmt.Errorf("error sending request: %w", res.errs[0])
	}

	if res.code < 200 || res.code >= 300 {
		return responseError(res.code, res.body)
	}

	if v != nil && len(res.body) > 0 {
		if err := json.Unmarshal(res.body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// responseError converts a non-2xx response into a *fiber.Error carrying the
// server's message, or the raw body when it is not an ErrorResponse
func responseError(code int, body []byte) error {
	var resp types.ErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Message != "" {
		return &fiber.Error{Code: code, Message: resp.Message}
	}
	return &fiber.Error{Code: code, Message: string(body)}
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	return c.doRequest(ctx, agent, response)
}

// HealthCheck checks the health of the API
func (c *APIClient) HealthCheck(ctx context.Context) (types.HealthResponse, error) {
	var response types.HealthResponse
	err := c.executeRequest(ctx, http.MethodGet, routes.HealthCheckURL(), nil, &response)
	return response, err
}

// Users returns the users resource
func (c *APIClient) Users() *Resource[models.User, handlers.UserCreateParams, handlers.UserUpdateParams] {
	return newResource[models.User, handlers.UserCreateParams, handlers.UserUpdateParams](c, permissions.Users)
}

// Clients returns the clients resource
func (c *APIClient) Clients() *Resource[models.Client, handlers.ClientCreateParams, handlers.ClientUpdateParams] {
	return newResource[models.Client, handlers.ClientCreateParams, handlers.ClientUpdateParams](c, permissions.Clients)
}

// Projects returns the projects resource
func (c *APIClient) Projects() *Resource[models.Project, handlers.ProjectCreateParams, handlers.ProjectUpdateParams] {
	return newResource[models.Project, handlers.ProjectCreateParams, handlers.ProjectUpdateParams](c, permissions.Projects)
}

// Stakeholders returns the stakeholders resource
func (c *APIClient) Stakeholders() *Resource[models.Stakeholder, handlers.StakeholderCreateParams, handlers.StakeholderUpdateParams] {
	return newResource[models.Stakeholder, handlers.StakeholderCreateParams, handlers.StakeholderUpdateParams](c, permissions.Stakeholders)
}

// Interviews returns the interviews resource
func (c *APIClient) Interviews() *Resource[models.Interview, handlers.InterviewCreateParams, handlers.InterviewUpdateParams] {
	return newResource[models.Interview, handlers.InterviewCreateParams, handlers.InterviewUpdateParams](c, permissions.Interviews)
}

// Configs returns the configs resource
func (c *APIClient) Configs() *ConfigResource {
	return &ConfigResource{
		Resource: newResource[models.Config, handlers.ConfigCreateParams, handlers.ConfigUpdateParams](c, permissions.Configs),
	}
}
