package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/handlers"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/routes"
	"github.com/hasnain-nisan/admindash/pkg/listing"
)

// Resource is the REST client of one CRUD resource. T is the entity, C and U
// the create and update parameters. A Resource holds no per-call state and is
// safe for concurrent use.
type Resource[T, C, U any] struct {
	c    *APIClient
	name string
}

func newResource[T, C, U any](c *APIClient, name string) *Resource[T, C, U] {
	return &Resource[T, C, U]{c: c, name: name}
}

// Name returns the resource name used in routes and scopes
func (r *Resource[T, C, U]) Name() string {
	return r.name
}

// List fetches one page
func (r *Resource[T, C, U]) List(ctx context.Context, q listing.Query) (listing.Page[T], error) {
	var page listing.Page[T]
	err := r.c.executeRequest(ctx, http.MethodGet, routes.ListURL(r.name, QueryValues(q)), nil, &page)
	return page, err
}

// DataSource adapts List for a listing.Controller
func (r *Resource[T, C, U]) DataSource() listing.DataSource[T] {
	return r.List
}

// Get fetches one row by id, including soft-deleted rows
func (r *Resource[T, C, U]) Get(ctx context.Context, id string) (T, error) {
	var v T
	err := r.c.executeRequest(ctx, http.MethodGet, routes.GetURL(r.name, id), nil, &v)
	return v, err
}

// Create creates a row
func (r *Resource[T, C, U]) Create(ctx context.Context, params C) (T, error) {
	var v T
	err := r.c.executeRequest(ctx, http.MethodPost, routes.CreateURL(r.name), params, &v)
	return v, err
}

// Update changes the fields set in params
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, params U) (T, error) {
	var v T
	err := r.c.executeRequest(ctx, http.MethodPatch, routes.UpdateURL(r.name, id), params, &v)
	return v, err
}

// Delete soft-deletes a row
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	return r.c.executeRequest(ctx, http.MethodDelete, routes.DeleteURL(r.name, id), nil, nil)
}

// Restore restores a soft-deleted row
func (r *Resource[T, C, U]) Restore(ctx context.Context, id string) (T, error) {
	var v T
	err := r.c.executeRequest(ctx, http.MethodPost, routes.RestoreURL(r.name, id), nil, &v)
	return v, err
}

// ConfigResource adds config version history to the config resource
type ConfigResource struct {
	*Resource[models.Config, handlers.ConfigCreateParams, handlers.ConfigUpdateParams]
}

// Versions fetches one page of the previous versions of a config. Only the
// page and page size of q are used.
func (r *ConfigResource) Versions(ctx context.Context, id string, q listing.Query) (listing.Page[models.ConfigVersion], error) {
	var page listing.Page[models.ConfigVersion]
	err := r.c.executeRequest(ctx, http.MethodGet, routes.ConfigVersionsURL(id, QueryValues(listing.Query{
		Page:     q.Page,
		PageSize: q.PageSize,
	})), nil, &page)
	return page, err
}

// QueryValues encodes q as list query parameters. Filters with an empty value
// are omitted. Entity-reference sentinels ("all") are removed by the
// controller before a query reaches a data source, unless the filter is
// declared Literal, in which case the value is sent as-is.
func QueryValues(q listing.Query) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("limit", strconv.Itoa(q.PageSize))
	}
	if q.SortField != "" {
		v.Set("sortField", q.SortField)
		if q.SortOrder != "" {
			v.Set("sortOrder", string(q.SortOrder))
		}
	}
	for name, value := range q.Filters {
		if value != "" {
			v.Set(name, value)
		}
	}
	return v
}
