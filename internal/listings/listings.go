// Package listings declares the filters of every management list and builds
// list controllers over the REST client
package listings

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/client"
	"github.com/hasnain-nisan/admindash/pkg/listing"
)

// Filter names shared by the lists
const (
	FilterName          = "name"
	FilterEmail         = "email"
	FilterClientCode    = "clientCode"
	FilterRole          = "role"
	FilterClientID      = "clientId"
	FilterProjectID     = "projectId"
	FilterDeletedStatus = "deletedStatus"
)

// Fields returns the filters of the list of resource. The project filter of
// interviews and configs depends on the client filter.
func Fields(resource string) []listing.FilterField {
	switch resource {
	case permissions.Users:
		return []listing.FilterField{
			listing.Text(FilterName),
			listing.Text(FilterEmail),
			listing.Select(FilterRole, listing.SentinelAll),
			listing.DeletedStatus(),
		}
	case permissions.Clients:
		return []listing.FilterField{
			listing.Text(FilterName),
			listing.Text(FilterClientCode),
			listing.DeletedStatus(),
		}
	case permissions.Projects:
		return []listing.FilterField{
			listing.Text(FilterName),
			listing.Select(FilterClientID, listing.SentinelAll),
			listing.DeletedStatus(),
		}
	case permissions.Stakeholders:
		return []listing.FilterField{
			listing.Text(FilterName),
			listing.Text(FilterEmail),
			listing.Select(FilterClientID, listing.SentinelAll),
			listing.DeletedStatus(),
		}
	case permissions.Interviews, permissions.Configs:
		return []listing.FilterField{
			listing.Text(FilterName),
			listing.Select(FilterClientID, listing.SentinelAll),
			listing.Dependent(FilterProjectID, FilterClientID),
			listing.DeletedStatus(),
		}
	default:
		return nil
	}
}

// Options configures the controllers built by this package
type Options struct {
	PageSize int
	// Debounce overrides the delay of free-text filters when positive
	Debounce     time.Duration
	FetchTimeout time.Duration
	Logger       *zap.Logger
	Metrics      *listing.Metrics
}

func (o Options) controllerOptions(resource string) []listing.Option {
	fields := Fields(resource)
	if o.Debounce > 0 {
		for i, f := range fields {
			if f.Debounce > 0 {
				fields[i] = f.WithDebounce(o.Debounce)
			}
		}
	}

	opts := []listing.Option{
		listing.WithName(resource),
		listing.WithFilters(fields...),
	}
	if o.PageSize > 0 {
		sizes := listing.DefaultPageSizes
		if !slices.Contains(sizes, o.PageSize) {
			sizes = append(slices.Clone(sizes), o.PageSize)
			slices.Sort(sizes)
		}
		opts = append(opts, listing.WithPageSizes(sizes...), listing.WithPageSize(o.PageSize))
	}
	if o.FetchTimeout > 0 {
		opts = append(opts, listing.WithFetchTimeout(o.FetchTimeout))
	}
	if o.Logger != nil {
		opts = append(opts, listing.WithLogger(o.Logger))
	}
	if o.Metrics != nil {
		opts = append(opts, listing.WithMetrics(o.Metrics))
	}
	return opts
}

// NewController builds the controller of resource over ds
func NewController[T any](resource string, ds listing.DataSource[T], o Options) *listing.Controller[T] {
	return listing.New(ds, o.controllerOptions(resource)...)
}

// Users builds the user list controller
func Users(c client.Client, o Options) *listing.Controller[models.User] {
	return NewController(permissions.Users, c.Users().DataSource(), o)
}

// Clients builds the client list controller
func Clients(c client.Client, o Options) *listing.Controller[models.Client] {
	return NewController(permissions.Clients, c.Clients().DataSource(), o)
}

// Projects builds the project list controller
func Projects(c client.Client, o Options) *listing.Controller[models.Project] {
	return NewController(permissions.Projects, c.Projects().DataSource(), o)
}

// Stakeholders builds the stakeholder list controller
func Stakeholders(c client.Client, o Options) *listing.Controller[models.Stakeholder] {
	return NewController(permissions.Stakeholders, c.Stakeholders().DataSource(), o)
}

// Interviews builds the interview list controller
func Interviews(c client.Client, o Options) *listing.Controller[models.Interview] {
	return NewController(permissions.Interviews, c.Interviews().DataSource(), o)
}

// Configs builds the config list controller
func Configs(c client.Client, o Options) *listing.Controller[models.Config] {
	return NewController(permissions.Configs, c.Configs().DataSource(), o)
}

// Actions are the row and toolbar actions a list offers
type Actions struct {
	Create  bool
	Edit    bool
	Delete  bool
	Restore bool
}

// ActionsFor gates the actions of the list of resource on p
func ActionsFor(p permissions.PermissionSet, resource string) Actions {
	w := p.CanWrite(resource)
	return Actions{Create: w, Edit: w, Delete: w, Restore: w}
}
