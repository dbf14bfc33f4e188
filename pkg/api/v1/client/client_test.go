// Package client provides unit tests for the API client.
//
// The tests use httptest to create a mock server that simulates the API,
// allowing the client to be tested without requiring an actual API server.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/types"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/handlers"
	"github.com/hasnain-nisan/admindash/pkg/listing"
)

// TestNewClient tests the NewClient function with various configurations.
func TestNewClient(t *testing.T) {
	tests := []struct {
		name       string
		opts       *Options
		wantErr    bool
		validateFn func(t *testing.T, client *APIClient)
	}{
		{
			name: "nil options",
			opts: nil,
			validateFn: func(t *testing.T, client *APIClient) {
				expectedDefaults := DefaultOptions()
				assert.Equal(t, expectedDefaults.BaseURL, client.baseURL)
				assert.Equal(t, expectedDefaults.Timeout, client.timeout)
			},
		},
		{
			name: "valid options",
			opts: &Options{
				BaseURL: "http://example.com",
				Timeout: 10 * time.Second,
				Token:   "abc",
			},
			validateFn: func(t *testing.T, client *APIClient) {
				assert.Equal(t, "http://example.com", client.baseURL)
				assert.Equal(t, 10*time.Second, client.timeout)
				assert.Equal(t, "abc", client.AuthToken)
			},
		},
		{
			name: "zero timeout uses default",
			opts: &Options{BaseURL: "http://example.com"},
			validateFn: func(t *testing.T, client *APIClient) {
				assert.Equal(t, DefaultTimeout, client.timeout)
			},
		},
		{
			name: "invalid base URL",
			opts: &Options{
				BaseURL: "://invalid-url",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, client)
			if tt.validateFn != nil {
				tt.validateFn(t, client)
			}
		})
	}
}

// setupTestServer creates a mock HTTP server for testing the client.
func setupTestServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/success":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"id": "1", "status": "success"}`))
		case "/error":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("Invalid request"))
		case "/envelope":
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(types.ErrConflict("client code already exists"))
		case "/invalid-json":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{invalid json`))
		case "/slow":
			time.Sleep(2 * time.Second)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

// TestAPIClient_doRequest tests the doRequest method of the APIClient.
func TestAPIClient_doRequest(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	apiClient, err := NewClient(&Options{BaseURL: server.URL})
	require.NoError(t, err)

	type testResponse struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}

	do := func(ctx context.Context, path string, v interface{}) error {
		agent, err := apiClient.createAgent(ctx, http.MethodGet, path, nil)
		require.NoError(t, err)
		return apiClient.doRequest(ctx, agent, v)
	}

	t.Run("success", func(t *testing.T) {
		var response testResponse
		err := do(context.Background(), "/success", &response)
		assert.NoError(t, err)
		assert.Equal(t, "1", response.ID)
		assert.Equal(t, "success", response.Status)
	})

	t.Run("error response", func(t *testing.T) {
		var response testResponse
		err := do(context.Background(), "/error", &response)

		var fiberErr *fiber.Error
		require.True(t, errors.As(err, &fiberErr))
		assert.Equal(t, http.StatusBadRequest, fiberErr.Code)
		assert.Equal(t, "Invalid request", fiberErr.Message)
	})

	t.Run("error envelope", func(t *testing.T) {
		err := do(context.Background(), "/envelope", nil)

		var fiberErr *fiber.Error
		require.True(t, errors.As(err, &fiberErr))
		assert.Equal(t, http.StatusConflict, fiberErr.Code)
		assert.Equal(t, "client code already exists", fiberErr.Message)
	})

	t.Run("invalid json", func(t *testing.T) {
		var response testResponse
		err := do(context.Background(), "/invalid-json", &response)
		require.Error(t, err)

		var fiberErr *fiber.Error
		assert.False(t, errors.As(err, &fiberErr))
		assert.Contains(t, err.Error(), "error decoding response")
	})

	t.Run("not found", func(t *testing.T) {
		err := do(context.Background(), "/not-found", nil)

		var fiberErr *fiber.Error
		require.True(t, errors.As(err, &fiberErr))
		assert.Equal(t, http.StatusNotFound, fiberErr.Code)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		start := time.Now()
		err := do(ctx, "/slow", nil)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})
}

// TestAPIClient_createAgent tests the createAgent method of the APIClient.
func TestAPIClient_createAgent(t *testing.T) {
	apiClient, err := NewClient(&Options{BaseURL: "http://example.com"})
	require.NoError(t, err)

	t.Run("valid request", func(t *testing.T) {
		agent, err := apiClient.createAgent(context.Background(), http.MethodGet, "/test", nil)
		assert.NoError(t, err)
		assert.NotNil(t, agent)
	})

	t.Run("unsupported method", func(t *testing.T) {
		agent, err := apiClient.createAgent(context.Background(), "INVALID", "/test", nil)
		assert.Error(t, err)
		assert.Nil(t, agent)
		assert.Contains(t, err.Error(), "unsupported HTTP method")
	})

	t.Run("with body", func(t *testing.T) {
		agent, err := apiClient.createAgent(context.Background(), http.MethodPost, "/test", map[string]interface{}{"name": "Acme"})
		assert.NoError(t, err)
		assert.NotNil(t, agent)
	})
}

func TestQueryValues(t *testing.T) {
	tests := []struct {
		name string
		q    listing.Query
		want url.Values
	}{
		{
			name: "empty",
			want: url.Values{},
		},
		{
			name: "paging and sort",
			q:    listing.Query{Page: 2, PageSize: 25, SortField: "name", SortOrder: listing.SortDesc},
			want: url.Values{"page": {"2"}, "limit": {"25"}, "sortField": {"name"}, "sortOrder": {"desc"}},
		},
		{
			name: "order without field is dropped",
			q:    listing.Query{Page: 1, SortOrder: listing.SortAsc},
			want: url.Values{"page": {"1"}},
		},
		{
			name: "empty filters are omitted",
			q:    listing.Query{Filters: map[string]string{"clientId": "c1", "deletedStatus": "", "name": "ac"}},
			want: url.Values{"clientId": {"c1"}, "name": {"ac"}},
		},
		{
			name: "literal values are sent",
			q:    listing.Query{Filters: map[string]string{"status": "all", "deletedStatus": "false"}},
			want: url.Values{"status": {"all"}, "deletedStatus": {"false"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QueryValues(tt.q))
		})
	}
}

// recorder is a fake API that records the requests it receives
type recorder struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []map[string]interface{}
	respond  func(w http.ResponseWriter, r *http.Request)
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&body)

	rec.mu.Lock()
	rec.requests = append(rec.requests, r)
	rec.bodies = append(rec.bodies, body)
	rec.mu.Unlock()

	rec.respond(w, r)
}

func (rec *recorder) last() (*http.Request, map[string]interface{}) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	n := len(rec.requests)
	return rec.requests[n-1], rec.bodies[n-1]
}

func newRecorder(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*recorder, *APIClient) {
	t.Helper()
	rec := &recorder{respond: respond}
	server := httptest.NewServer(rec)
	t.Cleanup(server.Close)

	c, err := NewClient(&Options{BaseURL: server.URL, Timeout: 5 * time.Second, Token: "tok"})
	require.NoError(t, err)
	return rec, c
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestResourceList(t *testing.T) {
	rec, c := newRecorder(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, listing.NewPage([]models.Client{{Name: "Acme"}}, 11, 2, 10))
	})

	page, err := c.Clients().List(context.Background(), listing.Query{
		Page:     2,
		PageSize: 10,
		Filters:  map[string]string{"name": "ac"},
	})
	require.NoError(t, err)
	assert.Equal(t, 11, page.Total)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Acme", page.Items[0].Name)

	req, _ := rec.last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/v1/clients", req.URL.Path)
	assert.Equal(t, "2", req.URL.Query().Get("page"))
	assert.Equal(t, "10", req.URL.Query().Get("limit"))
	assert.Equal(t, "ac", req.URL.Query().Get("name"))
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
}

func TestResourceDataSourceWithController(t *testing.T) {
	rec, c := newRecorder(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, listing.NewPage([]models.Project{}, 0, 1, 10))
	})

	ctrl := listing.New(c.Projects().DataSource(),
		listing.WithFilters(listing.Select("clientId", listing.SentinelAll), listing.DeletedStatus()),
	)
	defer ctrl.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, ctrl.Mount(ctx))
	_, err := ctrl.Settled(ctx)
	require.NoError(t, err)

	req, _ := rec.last()
	_, hasClient := req.URL.Query()["clientId"]
	assert.False(t, hasClient, "the all sentinel is not sent")
	_, hasDeleted := req.URL.Query()["deletedStatus"]
	assert.False(t, hasDeleted)
}

func TestResourceMutations(t *testing.T) {
	rec, c := newRecorder(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPost:
			writeJSON(w, http.StatusCreated, models.Client{Base: models.Base{ID: "c1"}, Name: "Acme", ClientCode: "ACME"})
		default:
			writeJSON(w, http.StatusOK, models.Client{Base: models.Base{ID: "c1"}, Name: "Acme Corp", ClientCode: "ACME"})
		}
	})
	ctx := context.Background()
	clients := c.Clients()

	created, err := clients.Create(ctx, handlers.ClientCreateParams{Name: "Acme", ClientCode: "acme"})
	require.NoError(t, err)
	assert.Equal(t, "c1", created.ID)
	req, body := rec.last()
	assert.Equal(t, "/api/v1/clients", req.URL.Path)
	assert.Equal(t, "Acme", body["name"])

	name := "Acme Corp"
	updated, err := clients.Update(ctx, "c1", handlers.ClientUpdateParams{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Name)
	req, body = rec.last()
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/api/v1/clients/c1", req.URL.Path)
	assert.Equal(t, map[string]interface{}{"name": "Acme Corp"}, body)

	require.NoError(t, clients.Delete(ctx, "c1"))
	req, _ = rec.last()
	assert.Equal(t, http.MethodDelete, req.Method)

	_, err = clients.Restore(ctx, "c1")
	require.NoError(t, err)
	req, _ = rec.last()
	assert.Equal(t, "/api/v1/clients/c1/restore", req.URL.Path)

	_, err = clients.Get(ctx, "c1")
	require.NoError(t, err)
	req, _ = rec.last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/v1/clients/c1", req.URL.Path)
}

func TestConfigVersions(t *testing.T) {
	rec, c := newRecorder(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, listing.NewPage([]models.ConfigVersion{{Version: 1}}, 1, 1, 5))
	})

	page, err := c.Configs().Versions(context.Background(), "cfg1", listing.Query{
		Page:     1,
		PageSize: 5,
		Filters:  map[string]string{"name": "ignored"},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	req, _ := rec.last()
	assert.Equal(t, "/api/v1/configs/cfg1/versions", req.URL.Path)
	assert.Equal(t, "", req.URL.Query().Get("name"))
	assert.Equal(t, "5", req.URL.Query().Get("limit"))
}

func TestHealthCheck(t *testing.T) {
	_, c := newRecorder(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, types.HealthResponse{Status: "healthy"})
	})
	resp, err := c.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", resp.Status)
}

func TestRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, types.HealthResponse{Status: "healthy"})
	}))
	defer server.Close()

	c, err := NewClient(&Options{BaseURL: server.URL, RateLimit: 1})
	require.NoError(t, err)
	require.NotNil(t, c.limiter)

	_, err = c.HealthCheck(context.Background())
	require.NoError(t, err, "the first request uses the burst")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.HealthCheck(ctx)
	assert.ErrorContains(t, err, "rate limiter")
}
