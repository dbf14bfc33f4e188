package test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/metrics"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/client"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/handlers"
)

// Suite runs the API server against a throwaway SQLite database and holds a
// client talking to it over real HTTP.
type Suite struct {
	t *testing.T

	App     *fiber.App
	Server  *httptest.Server
	Metrics *metrics.Metrics

	// APIClient is authenticated as an admin when the suite has a JWT secret
	APIClient client.Client

	DB *gorm.DB

	jwtSecret string

	ctx        context.Context
	cancelFunc context.CancelFunc

	// cleanups run in reverse order of registration
	cleanups []func()
}

// NewSuite creates a suite with its database and server running. Call
// Cleanup when done; it is safe to call more than once.
func NewSuite(t *testing.T, opts ...Option) *Suite {
	t.Helper()

	s := &Suite{t: t}
	s.ctx, s.cancelFunc = context.WithTimeout(context.Background(), DefaultTestTimeout)
	for _, opt := range opts {
		opt(s)
	}
	s.addCleanup(func() { s.cancelFunc() })

	setupDB(s)
	SetupServer(s)
	return s
}

func (s *Suite) addCleanup(fn func()) {
	s.cleanups = append(s.cleanups, fn)
}

// Cleanup stops the server and closes the database
func (s *Suite) Cleanup() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}

// Context returns the suite's context, canceled by Cleanup
func (s *Suite) Context() context.Context {
	return s.ctx
}

// Require returns require assertions bound to the suite's test
func (s *Suite) Require() *require.Assertions {
	return require.New(s.t)
}

// Token signs a token for subject with role. It fails the test when the
// suite runs without a JWT secret.
func (s *Suite) Token(subject string, role models.UserRole, scopes ...string) string {
	s.Require().NotEmpty(s.jwtSecret, "Token requires WithJWTSecret")
	token, err := permissions.Sign(s.jwtSecret, subject, role, testTokenTTL, scopes...)
	s.Require().NoError(err, "Failed to sign token")
	return token
}

// ClientFor returns an API client authenticated as subject with role
func (s *Suite) ClientFor(subject string, role models.UserRole, scopes ...string) client.Client {
	return s.ClientWithToken(s.Token(subject, role, scopes...))
}

// CreateClient creates a client through the API and fails the test on error
func (s *Suite) CreateClient(name, code string) models.Client {
	c, err := s.APIClient.Clients().Create(s.ctx, handlers.ClientCreateParams{Name: name, ClientCode: code})
	s.Require().NoError(err, "Failed to create client %s", code)
	return c
}
