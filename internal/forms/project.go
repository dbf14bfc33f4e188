package forms

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/internal/validation"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/client"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/handlers"
	"github.com/hasnain-nisan/admindash/pkg/cascade"
)

// ProjectForm creates or edits a project. The stakeholder options follow the
// chosen client.
type ProjectForm struct {
	api   client.Client
	perms permissions.PermissionSet

	Stakeholders *cascade.Selector[models.Stakeholder]

	mu          sync.Mutex
	id          string
	name        string
	description string
}

// NewProjectForm returns an empty project form
func NewProjectForm(api client.Client, perms permissions.PermissionSet, logger *zap.Logger) *ProjectForm {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectForm{
		api:   api,
		perms: perms,
		Stakeholders: cascade.New(
			activeOf(api.Stakeholders().List, "clientId"),
			func(s models.Stakeholder) string { return s.ID },
			cascade.Multi,
			cascade.WithLogger(logger.Named("stakeholders")),
		),
	}
}

// Hydrate fills the form from an existing project and loads the stakeholders
// of its client without touching the selection
func (f *ProjectForm) Hydrate(ctx context.Context, p models.Project) error {
	f.mu.Lock()
	f.id, f.name, f.description = p.ID, p.Name, p.Description
	f.mu.Unlock()
	return f.Stakeholders.Hydrate(ctx, p.ClientID, p.StakeholderIDs...)
}

// SetClient applies a user-driven client change
func (f *ProjectForm) SetClient(ctx context.Context, clientID string) error {
	return f.Stakeholders.SetParent(ctx, clientID)
}

// SetDetails sets the free fields of the form
func (f *ProjectForm) SetDetails(name, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name, f.description = name, description
}

// SelectStakeholders replaces the selected stakeholders
func (f *ProjectForm) SelectStakeholders(ids ...string) error {
	return f.Stakeholders.Select(ids...)
}

// Params returns the create parameters the form currently holds
func (f *ProjectForm) Params() handlers.ProjectCreateParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.Stakeholders.State()
	return handlers.ProjectCreateParams{
		Name:           f.name,
		Description:    f.description,
		ClientID:       st.Parent,
		StakeholderIDs: st.Selection,
	}
}

// Validate checks the form without contacting the server
func (f *ProjectForm) Validate() error {
	return validation.Struct(f.Params())
}

// Submit validates the form and creates the project, or updates it when the
// form was hydrated. On failure the form keeps its values.
func (f *ProjectForm) Submit(ctx context.Context) (models.Project, error) {
	if err := authorize(f.perms, permissions.Projects); err != nil {
		return models.Project{}, err
	}
	params := f.Params()
	if err := validation.Struct(params); err != nil {
		return models.Project{}, err
	}

	f.mu.Lock()
	id := f.id
	f.mu.Unlock()

	if id == "" {
		return f.api.Projects().Create(ctx, params)
	}
	return f.api.Projects().Update(ctx, id, handlers.ProjectUpdateParams{
		Name:           &params.Name,
		Description:    &params.Description,
		ClientID:       &params.ClientID,
		StakeholderIDs: nonNil(params.StakeholderIDs),
	})
}
