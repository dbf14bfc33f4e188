package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/services"
	"github.com/hasnain-nisan/admindash/internal/types"
	"github.com/hasnain-nisan/admindash/pkg/listing"
)

// fakeRows serves total integers and records every ListOptions it receives
type fakeRows struct {
	total int
	calls []models.ListOptions
	err   error
}

func (f *fakeRows) list(_ context.Context, opts *models.ListOptions) ([]int, int64, error) {
	f.calls = append(f.calls, *opts)
	if f.err != nil {
		return nil, 0, f.err
	}
	rows := []int{}
	for i := opts.Offset; i < opts.Offset+opts.Limit && i < f.total; i++ {
		rows = append(rows, i)
	}
	return rows, int64(f.total), nil
}

func serveList(t *testing.T, f *fakeRows, target string) (int, []byte) {
	t.Helper()
	app := fiber.New()
	app.Get("/rows", func(c *fiber.Ctx) error {
		return respondList(c, interviewList, f.list)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestRespondList(t *testing.T) {
	f := &fakeRows{total: 25}
	status, body := serveList(t, f, "/rows?page=2&limit=10&sortField=date&sortOrder=desc&clientId=c1&projectId=all&name=kick&deletedStatus=false")
	require.Equal(t, http.StatusOK, status)

	var page listing.Page[int]
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, page.Items)

	require.Len(t, f.calls, 1)
	opts := f.calls[0]
	assert.Equal(t, 10, opts.Offset)
	assert.Equal(t, "date", opts.SortColumn)
	assert.Equal(t, models.SortDesc, opts.SortDirection)
	assert.Equal(t, models.DeletedStatusActive, opts.DeletedStatus)
	assert.Equal(t, map[string]string{"client_id": "c1"}, opts.Filters)
	assert.Equal(t, map[string]string{"name": "kick"}, opts.Search)
}

func TestRespondListDefaults(t *testing.T) {
	f := &fakeRows{total: 3}
	status, body := serveList(t, f, "/rows")
	require.Equal(t, http.StatusOK, status)

	var page listing.Page[int]
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.TotalPages)

	opts := f.calls[0]
	assert.Equal(t, models.DefaultLimit, opts.Limit)
	assert.Equal(t, 0, opts.Offset)
	assert.Equal(t, models.DeletedStatusAll, opts.DeletedStatus)
	assert.Empty(t, opts.SortColumn)
	assert.Nil(t, opts.Filters)
}

func TestRespondListClampsPastEnd(t *testing.T) {
	f := &fakeRows{total: 25}
	status, body := serveList(t, f, "/rows?page=9&limit=10")
	require.Equal(t, http.StatusOK, status)

	var page listing.Page[int]
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, []int{20, 21, 22, 23, 24}, page.Items)
	require.Len(t, f.calls, 2)
	assert.Equal(t, 20, f.calls[1].Offset)
}

func TestRespondListHugePage(t *testing.T) {
	f := &fakeRows{total: 25}
	status, body := serveList(t, f, "/rows?page=9223372036854775807&limit=100")
	require.Equal(t, http.StatusOK, status)

	var page listing.Page[int]
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 1, page.CurrentPage)
	assert.Len(t, page.Items, 25)

	require.Len(t, f.calls, 2)
	for _, opts := range f.calls {
		assert.GreaterOrEqual(t, opts.Offset, 0)
	}
	assert.Equal(t, 0, f.calls[1].Offset)
}

func TestRespondListEmpty(t *testing.T) {
	f := &fakeRows{}
	status, body := serveList(t, f, "/rows?page=4")
	require.Equal(t, http.StatusOK, status)

	var page listing.Page[int]
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Items)
	assert.Len(t, f.calls, 1)
}

func TestRespondListRejects(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "zero page", target: "/rows?page=0"},
		{name: "limit too large", target: "/rows?limit=101"},
		{name: "non numeric page", target: "/rows?page=x"},
		{name: "bad order", target: "/rows?sortOrder=up"},
		{name: "unknown sort field", target: "/rows?sortField=password"},
		{name: "bad deleted status", target: "/rows?deletedStatus=maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRows{total: 5}
			status, body := serveList(t, f, tt.target)
			assert.Equal(t, http.StatusBadRequest, status)

			var resp types.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.Equal(t, types.InvalidInputSlug, resp.Error)
			assert.Empty(t, f.calls)
		})
	}
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		slug    types.Slug
		message string
	}{
		{
			name:    "invalid input",
			err:     errors.Join(services.ErrInvalidInput, errors.New("ignored")),
			status:  http.StatusBadRequest,
			slug:    types.InvalidInputSlug,
		},
		{
			name:    "not found",
			err:     errors.Join(services.ErrClientNotFound, gorm.ErrRecordNotFound),
			status:  http.StatusNotFound,
			slug:    types.NotFoundSlug,
			message: "client not found",
		},
		{
			name:    "conflict",
			err:     errors.Join(services.ErrConflict, gorm.ErrDuplicatedKey),
			status:  http.StatusConflict,
			slug:    types.ConflictSlug,
			message: "conflict: " + gorm.ErrDuplicatedKey.Error(),
		},
		{
			name:    "unexpected",
			err:     errors.New("connection reset"),
			status:  http.StatusInternalServerError,
			slug:    types.ServerErrorSlug,
			message: ErrMsgGetFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return respondWithError(c, tt.err, ErrMsgGetFailed)
			})
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			var body types.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.slug, body.Error)
			assert.Equal(t, tt.status, body.Status)
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Message)
			}
		})
	}
}

func TestWithFilter(t *testing.T) {
	f := &fakeRows{total: 1}
	list := withFilter(lister[int](f.list), "role", "2")

	opts := &models.ListOptions{Limit: 10, Filters: map[string]string{"client_id": "c1"}}
	_, _, err := list(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"client_id": "c1", "role": "2"}, f.calls[0].Filters)
	assert.Equal(t, map[string]string{"client_id": "c1"}, opts.Filters, "caller options untouched")
}
