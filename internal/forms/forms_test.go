package forms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/internal/types"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/client"
	"github.com/hasnain-nisan/admindash/pkg/listing"
)

func ptr(s string) *string { return &s }

// fakeAPI serves project and stakeholder options per client and records
// mutations
type fakeAPI struct {
	mu           sync.Mutex
	projects     map[string][]models.Project
	stakeholders map[string][]models.Stakeholder
	listCalls    map[string]int
	mutations    []mutation
	failWith     *types.ErrorResponse
}

type mutation struct {
	method string
	path   string
	body   map[string]interface{}
}

func newFakeAPI(t *testing.T) (*fakeAPI, client.Client) {
	t.Helper()
	f := &fakeAPI{
		projects: map[string][]models.Project{
			"c1": {{Base: models.Base{ID: "p1"}, Name: "Discovery", ClientID: "c1"}},
			"c2": {{Base: models.Base{ID: "p2"}, Name: "Rollout", ClientID: "c2"}},
		},
		stakeholders: map[string][]models.Stakeholder{
			"c1": {{Base: models.Base{ID: "s1"}, Name: "Ann", ClientID: ptr("c1")}, {Base: models.Base{ID: "s2"}, Name: "Bo", ClientID: ptr("c1")}},
			"c2": {{Base: models.Base{ID: "s2"}, Name: "Bo", ClientID: ptr("c2")}, {Base: models.Base{ID: "s3"}, Name: "Cy", ClientID: ptr("c2")}},
		},
		listCalls: map[string]int{},
	}
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	c, err := client.NewClient(&client.Options{BaseURL: server.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return f, c
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodGet {
		clientID := r.URL.Query().Get("clientId")
		f.listCalls[r.URL.Path+"?"+clientID]++
		switch r.URL.Path {
		case "/api/v1/projects":
			items := f.projects[clientID]
			_ = json.NewEncoder(w).Encode(listing.NewPage(items, len(items), 1, 100))
		case "/api/v1/stakeholders":
			items := f.stakeholders[clientID]
			_ = json.NewEncoder(w).Encode(listing.NewPage(items, len(items), 1, 100))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
		return
	}

	var body map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&body)
	f.mutations = append(f.mutations, mutation{method: r.Method, path: r.URL.Path, body: body})
	if f.failWith != nil {
		w.WriteHeader(f.failWith.Status)
		_ = json.NewEncoder(w).Encode(f.failWith)
		return
	}
	id := "new"
	if parts := strings.Split(r.URL.Path, "/"); r.Method == http.MethodPatch {
		id = parts[len(parts)-1]
	}
	body["id"] = id
	_ = json.NewEncoder(w).Encode(body)
}

func (f *fakeAPI) calls(path, clientID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls[path+"?"+clientID]
}

func (f *fakeAPI) lastMutation() mutation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mutations[len(f.mutations)-1]
}

var (
	editor = permissions.New("editor@example.com", models.UserRoleEditor)
	viewer = permissions.New("viewer@example.com", models.UserRoleViewer)
	day    = time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
)

func TestInterviewFormClientChange(t *testing.T) {
	api, c := newFakeAPI(t)
	form := NewInterviewForm(c, editor, nil)
	ctx := context.Background()

	require.NoError(t, form.SetClient(ctx, "c1"))
	assert.Len(t, form.Projects.State().Children, 1)
	assert.Len(t, form.Stakeholders.State().Children, 2)

	require.NoError(t, form.SelectProject("p1"))
	require.NoError(t, form.SelectStakeholders("s1", "s2"))
	assert.ErrorContains(t, form.SelectProject("p2"), "not an option")

	require.NoError(t, form.SetClient(ctx, "c2"))
	assert.Equal(t, "", form.Projects.State().Selected(), "single select clears")
	assert.Equal(t, []string{"s2"}, form.Stakeholders.State().Selection, "multi select keeps members of the new client")
	assert.Equal(t, 1, api.calls("/api/v1/projects", "c2"))
	assert.Equal(t, 1, api.calls("/api/v1/stakeholders", "c2"))

	require.NoError(t, form.SetClient(ctx, ""))
	assert.Empty(t, form.Projects.State().Children)
	assert.Empty(t, form.Stakeholders.State().Selection)
}

func TestInterviewFormHydrateKeepsSelection(t *testing.T) {
	api, c := newFakeAPI(t)
	form := NewInterviewForm(c, editor, nil)

	require.NoError(t, form.Hydrate(context.Background(), models.Interview{
		Base:           models.Base{ID: "i1"},
		Name:           "Kickoff",
		Date:           day,
		ClientID:       "c1",
		ProjectID:      "p1",
		StakeholderIDs: []string{"s1", "s2"},
	}))

	assert.Equal(t, "p1", form.Projects.State().Selected())
	assert.Equal(t, []string{"s1", "s2"}, form.Stakeholders.State().Selection)
	assert.True(t, form.Stakeholders.State().Hydrated)
	assert.Equal(t, 1, api.calls("/api/v1/projects", "c1"))

	// re-selecting the same client neither clears nor refetches
	require.NoError(t, form.SetClient(context.Background(), "c1"))
	assert.Equal(t, "p1", form.Projects.State().Selected())
	assert.Equal(t, 1, api.calls("/api/v1/projects", "c1"))
}

func TestInterviewFormValidate(t *testing.T) {
	api, c := newFakeAPI(t)
	form := NewInterviewForm(c, editor, nil)

	_, err := form.Submit(context.Background())
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "name")
	assert.Contains(t, verrs, "date")
	assert.Contains(t, verrs, "clientId")
	assert.Contains(t, verrs, "projectId")
	assert.Empty(t, api.mutations, "validation failures never reach the server")
	assert.Equal(t, verrs.Error(), ErrorMessage(err))
}

func TestInterviewFormSubmit(t *testing.T) {
	api, c := newFakeAPI(t)
	form := NewInterviewForm(c, editor, nil)
	ctx := context.Background()

	require.NoError(t, form.SetClient(ctx, "c1"))
	require.NoError(t, form.SelectProject("p1"))
	require.NoError(t, form.SelectStakeholders("s2"))
	form.SetDetails("Kickoff", day, "notes")
	require.NoError(t, form.Validate())

	created, err := form.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)

	m := api.lastMutation()
	assert.Equal(t, http.MethodPost, m.method)
	assert.Equal(t, "/api/v1/interviews", m.path)
	assert.Equal(t, "c1", m.body["clientId"])
	assert.Equal(t, "p1", m.body["projectId"])
	assert.Equal(t, []interface{}{"s2"}, m.body["stakeholderIds"])
}

func TestInterviewFormSubmitFailureKeepsValues(t *testing.T) {
	api, c := newFakeAPI(t)
	resp := types.ErrInvalidInput("project p1 does not belong to client c1")
	api.failWith = &resp

	form := NewInterviewForm(c, editor, nil)
	ctx := context.Background()
	require.NoError(t, form.SetClient(ctx, "c1"))
	require.NoError(t, form.SelectProject("p1"))
	form.SetDetails("Kickoff", day, "")

	_, err := form.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, "project p1 does not belong to client c1", ErrorMessage(err))

	params := form.Params()
	assert.Equal(t, "Kickoff", params.Name)
	assert.Equal(t, "p1", params.ProjectID)
}

func TestSubmitForbidden(t *testing.T) {
	api, c := newFakeAPI(t)
	form := NewProjectForm(c, viewer, nil)
	form.SetDetails("Rollout", "")
	require.NoError(t, form.SetClient(context.Background(), "c2"))

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Contains(t, ErrorMessage(err), "projects:write")
	assert.Empty(t, api.mutations)
}

func TestProjectFormUpdate(t *testing.T) {
	api, c := newFakeAPI(t)
	form := NewProjectForm(c, editor, nil)
	ctx := context.Background()

	require.NoError(t, form.Hydrate(ctx, models.Project{
		Base:           models.Base{ID: "p1"},
		Name:           "Discovery",
		ClientID:       "c1",
		StakeholderIDs: []string{"s1"},
	}))
	assert.Equal(t, []string{"s1"}, form.Stakeholders.State().Selection)

	require.NoError(t, form.SetClient(ctx, "c2"))
	assert.Empty(t, form.Stakeholders.State().Selection)

	_, err := form.Submit(ctx)
	require.NoError(t, err)

	m := api.lastMutation()
	assert.Equal(t, http.MethodPatch, m.method)
	assert.Equal(t, "/api/v1/projects/p1", m.path)
	assert.Equal(t, "c2", m.body["clientId"])
	assert.Equal(t, []interface{}{}, m.body["stakeholderIds"], "an empty selection is sent to clear the list")
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, GenericErrorMessage, ErrorMessage(errors.New("dial tcp: refused")))
	assert.Equal(t, GenericErrorMessage, ErrorMessage(&fiber.Error{Code: 502}))
	assert.Equal(t, "boom", ErrorMessage(&fiber.Error{Code: 500, Message: "boom"}))
}
