package test

import (
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/hasnain-nisan/admindash/internal/app"
	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/metrics"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/client"
)

// testClientTimeout is the timeout for test API client requests
const testClientTimeout = 5 * time.Second

// testTokenTTL is the lifetime of tokens issued by Token
const testTokenTTL = time.Hour

// SetupServer starts the API server over the suite's database
func SetupServer(suite *Suite) {
	suite.Metrics = metrics.New()
	suite.App = app.New(app.Options{
		DB:        suite.DB,
		JWTSecret: suite.jwtSecret,
		Metrics:   suite.Metrics,
	})

	suite.Server = httptest.NewServer(adaptor.FiberApp(suite.App))
	suite.addCleanup(suite.Server.Close)

	token := ""
	if suite.jwtSecret != "" {
		token = suite.Token("admin@example.com", models.UserRoleAdmin)
	}
	suite.APIClient = suite.ClientWithToken(token)
}

// ClientWithToken returns an API client for the suite's server sending token
func (s *Suite) ClientWithToken(token string) client.Client {
	c, err := client.NewClient(&client.Options{
		BaseURL: s.Server.URL,
		Timeout: testClientTimeout,
		Token:   token,
	})
	s.Require().NoError(err, "Failed to create API client")
	return c
}
