package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	*Repository[models.Project]
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{Repository: NewRepository[models.Project](db, "project", "Client")}
}

// ListByClient returns the active projects of a client, ordered by name
func (r *ProjectRepository) ListByClient(ctx context.Context, clientID string, opts *models.ListOptions) ([]models.Project, int64, error) {
	return r.List(ctx, scoped(opts, "client_id", clientID))
}

// scoped copies opts with an extra exact-match filter. Rows are active only
// and sorted by name unless opts says otherwise.
func scoped(opts *models.ListOptions, column, value string) *models.ListOptions {
	out := models.ListOptions{DeletedStatus: models.DeletedStatusActive, SortColumn: "name"}
	if opts != nil {
		out = *opts
	}
	filters := make(map[string]string, len(out.Filters)+1)
	for k, v := range out.Filters {
		filters[k] = v
	}
	filters[column] = value
	out.Filters = filters
	return &out
}
