package forms

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/internal/validation"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/client"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/handlers"
	"github.com/hasnain-nisan/admindash/pkg/cascade"
)

// InterviewForm creates or edits an interview. Choosing a client reloads the
// projects and stakeholders of that client; the project selection is cleared
// and the stakeholder selection narrowed to the new client.
type InterviewForm struct {
	api   client.Client
	perms permissions.PermissionSet

	Projects     *cascade.Selector[models.Project]
	Stakeholders *cascade.Selector[models.Stakeholder]

	mu    sync.Mutex
	id    string
	name  string
	date  time.Time
	notes string
}

// NewInterviewForm returns an empty interview form
func NewInterviewForm(api client.Client, perms permissions.PermissionSet, logger *zap.Logger) *InterviewForm {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InterviewForm{
		api:   api,
		perms: perms,
		Projects: cascade.New(
			activeOf(api.Projects().List, "clientId"),
			func(p models.Project) string { return p.ID },
			cascade.Single,
			cascade.WithLogger(logger.Named("projects")),
		),
		Stakeholders: cascade.New(
			activeOf(api.Stakeholders().List, "clientId"),
			func(s models.Stakeholder) string { return s.ID },
			cascade.Multi,
			cascade.WithLogger(logger.Named("stakeholders")),
		),
	}
}

// Hydrate fills the form from an existing interview and loads the options of
// its client. The project and stakeholder selections are kept.
func (f *InterviewForm) Hydrate(ctx context.Context, in models.Interview) error {
	f.mu.Lock()
	f.id, f.name, f.date, f.notes = in.ID, in.Name, in.Date, in.Notes
	f.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if in.ProjectID == "" {
			return f.Projects.Hydrate(ctx, in.ClientID)
		}
		return f.Projects.Hydrate(ctx, in.ClientID, in.ProjectID)
	})
	g.Go(func() error { return f.Stakeholders.Hydrate(ctx, in.ClientID, in.StakeholderIDs...) })
	return g.Wait()
}

// SetClient applies a user-driven client change
func (f *InterviewForm) SetClient(ctx context.Context, clientID string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return f.Projects.SetParent(ctx, clientID) })
	g.Go(func() error { return f.Stakeholders.SetParent(ctx, clientID) })
	return g.Wait()
}

// SetDetails sets the free fields of the form
func (f *InterviewForm) SetDetails(name string, date time.Time, notes string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name, f.date, f.notes = name, date, notes
}

// SelectProject selects the interview's project
func (f *InterviewForm) SelectProject(id string) error {
	return f.Projects.Select(id)
}

// SelectStakeholders replaces the selected stakeholders
func (f *InterviewForm) SelectStakeholders(ids ...string) error {
	return f.Stakeholders.Select(ids...)
}

// Params returns the create parameters the form currently holds
func (f *InterviewForm) Params() handlers.InterviewCreateParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	projects := f.Projects.State()
	return handlers.InterviewCreateParams{
		Name:           f.name,
		Date:           f.date,
		Notes:          f.notes,
		ClientID:       projects.Parent,
		ProjectID:      projects.Selected(),
		StakeholderIDs: f.Stakeholders.State().Selection,
	}
}

// Validate checks the form without contacting the server
func (f *InterviewForm) Validate() error {
	return validation.Struct(f.Params())
}

// Submit validates the form and creates the interview, or updates it when the
// form was hydrated. On failure the form keeps its values.
func (f *InterviewForm) Submit(ctx context.Context) (models.Interview, error) {
	if err := authorize(f.perms, permissions.Interviews); err != nil {
		return models.Interview{}, err
	}
	params := f.Params()
	if err := validation.Struct(params); err != nil {
		return models.Interview{}, err
	}

	f.mu.Lock()
	id := f.id
	f.mu.Unlock()

	if id == "" {
		return f.api.Interviews().Create(ctx, params)
	}
	return f.api.Interviews().Update(ctx, id, handlers.InterviewUpdateParams{
		Name:           &params.Name,
		Date:           &params.Date,
		Notes:          &params.Notes,
		ClientID:       &params.ClientID,
		ProjectID:      &params.ProjectID,
		StakeholderIDs: nonNil(params.StakeholderIDs),
	})
}
