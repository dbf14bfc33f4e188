// Package listing provides the paged, filtered list controller shared by every
// management list, together with the query and page shapes exchanged with a
// data source.
package listing

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// SortOrder is the direction of a sort
type SortOrder string

const (
	// SortAsc sorts ascending
	SortAsc SortOrder = "asc"
	// SortDesc sorts descending
	SortDesc SortOrder = "desc"
)

// ParseSortOrder parses a sort order, accepting an empty string as "unset"
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	default:
		return "", fmt.Errorf("invalid sort order %q: must be asc or desc", s)
	}
}

// Valid reports whether the order is unset, asc or desc
func (o SortOrder) Valid() bool {
	return o == "" || o == SortAsc || o == SortDesc
}

// SentinelAll is the "no constraint" value for entity-reference filters
const SentinelAll = "all"

// IsSentinel reports whether a filter value means "omit this filter"
func IsSentinel(v string) bool {
	return v == "" || v == SentinelAll
}

// Query is the request sent to a data source.
type Query struct {
	// Page is 1-indexed
	Page      int
	PageSize  int
	SortField string
	SortOrder SortOrder
	// Filters holds only constraining values; sentinels have already been removed
	Filters map[string]string
}

// Offset returns the number of rows skipped before Page
func (q Query) Offset() int {
	if q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// Filter returns the value of a filter and whether it is set
func (q Query) Filter(name string) (string, bool) {
	v, ok := q.Filters[name]
	return v, ok
}

// String renders the query deterministically, mostly for logs
func (q Query) String() string {
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "page=%d size=%d", q.Page, q.PageSize)
	if q.SortField != "" {
		fmt.Fprintf(&b, " sort=%s:%s", q.SortField, q.SortOrder)
	}
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%q", k, q.Filters[k])
	}
	return b.String()
}

// Page is one page of results returned by a data source
type Page[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// TotalPages returns max(1, ceil(total/pageSize)).
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage bounds a 1-indexed page to [1, TotalPages(total, pageSize)]
func ClampPage(page, total, pageSize int) int {
	if page < 1 {
		return 1
	}
	if last := TotalPages(total, pageSize); page > last {
		return last
	}
	return page
}

// NewPage builds a page, deriving TotalPages from total and pageSize
func NewPage[T any](items []T, total, page, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Total:       total,
		CurrentPage: ClampPage(page, total, pageSize),
		TotalPages:  TotalPages(total, pageSize),
	}
}

// DataSource fetches one page for a query. Implementations must be safe to call
// concurrently; the REST client's resources are stateless and satisfy this.
type DataSource[T any] func(ctx context.Context, q Query) (Page[T], error)
