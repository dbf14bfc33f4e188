package handlers

import (
	"context"
	"fmt"
	"math"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/validation"
	"github.com/hasnain-nisan/admindash/pkg/listing"
)

// maxPage bounds the requested page so its row offset fits an int32 at the
// largest limit. Anything beyond it is past the end of every table.
const maxPage = math.MaxInt32 / 100

// ListParams are the query parameters every list endpoint accepts
type ListParams struct {
	Page          int    `query:"page" validate:"min=1"`
	Limit         int    `query:"limit" validate:"min=1,max=100"`
	SortField     string `query:"sortField"`
	SortOrder     string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
	DeletedStatus string `query:"deletedStatus" validate:"deletedstatus"`
}

// listSchema whitelists what a resource may be sorted, filtered and searched by.
// Each map goes from the API name to the column name.
type listSchema struct {
	sort    map[string]string
	filters map[string]string
	search  map[string]string
}

// parseList reads and validates the list query of c against schema
func parseList(c *fiber.Ctx, schema listSchema) (*models.ListOptions, ListParams, error) {
	params := ListParams{Page: 1, Limit: models.DefaultLimit}
	if err := c.QueryParser(&params); err != nil {
		return nil, params, fmt.Errorf("%s: %w", ErrMsgInvalidListQuery, err)
	}
	if err := validation.Struct(params); err != nil {
		return nil, params, err
	}
	params.Page = min(params.Page, maxPage)

	opts := &models.ListOptions{
		Limit:         params.Limit,
		Offset:        (params.Page - 1) * params.Limit,
		DeletedStatus: models.DeletedStatus(params.DeletedStatus),
		SortDirection: models.SortAsc,
	}
	if params.SortOrder == string(models.SortDesc) {
		opts.SortDirection = models.SortDesc
	}
	if params.SortField != "" {
		column, ok := schema.sort[params.SortField]
		if !ok {
			return nil, params, fmt.Errorf("cannot sort by %q", params.SortField)
		}
		opts.SortColumn = column
	}

	for name, column := range schema.filters {
		if v := c.Query(name); !listing.IsSentinel(v) {
			if opts.Filters == nil {
				opts.Filters = make(map[string]string)
			}
			opts.Filters[column] = v
		}
	}
	for name, column := range schema.search {
		if v := c.Query(name); v != "" {
			if opts.Search == nil {
				opts.Search = make(map[string]string)
			}
			opts.Search[column] = v
		}
	}
	return opts, params, nil
}

type lister[T any] func(ctx context.Context, opts *models.ListOptions) ([]T, int64, error)

// respondList serves one page. A page past the end is clamped to the last
// page, which is echoed back as currentPage.
func respondList[T any](c *fiber.Ctx, schema listSchema, list lister[T]) error {
	opts, params, err := parseList(c, schema)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.UserContext()
	rows, total, err := list(ctx, opts)
	if err != nil {
		return respondWithError(c, err, ErrMsgListFailed)
	}

	page := params.Page
	if len(rows) == 0 && total > 0 && opts.Offset >= int(total) {
		page = listing.TotalPages(int(total), opts.Limit)
		opts.Offset = (page - 1) * opts.Limit
		if rows, total, err = list(ctx, opts); err != nil {
			return respondWithError(c, err, ErrMsgListFailed)
		}
	}

	return c.JSON(listing.NewPage(rows, int(total), page, opts.Limit))
}

// withFilter adds an exact column filter to every call of list
func withFilter[T any](list lister[T], column, value string) lister[T] {
	return func(ctx context.Context, opts *models.ListOptions) ([]T, int64, error) {
		filters := make(map[string]string, len(opts.Filters)+1)
		for k, v := range opts.Filters {
			filters[k] = v
		}
		filters[column] = value
		scoped := *opts
		scoped.Filters = filters
		return list(ctx, &scoped)
	}
}
