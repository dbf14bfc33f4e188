package listing

import (
	"time"

	"go.uber.org/zap"
)

// DefaultPageSize is the page size a controller starts with
const DefaultPageSize = 10

// DefaultPageSizes are the page sizes a controller accepts
var DefaultPageSizes = []int{10, 20, 30, 40, 50}

type config struct {
	name         string
	fields       []FilterField
	pageSize     int
	pageSizes    []int
	sortField    string
	sortOrder    SortOrder
	fetchTimeout time.Duration
	logger       *zap.Logger
	metrics      *Metrics
	bufferSize   int
}

// Option configures a Controller
type Option func(*config)

// WithName labels the controller in logs and metrics
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithFilters declares the filters the controller exposes
func WithFilters(fields ...FilterField) Option {
	return func(c *config) { c.fields = append(c.fields, fields...) }
}

// WithPageSize sets the starting page size
func WithPageSize(n int) Option {
	return func(c *config) { c.pageSize = n }
}

// WithPageSizes replaces the allowed page sizes
func WithPageSizes(sizes ...int) Option {
	return func(c *config) { c.pageSizes = append([]int(nil), sizes...) }
}

// WithSort sets the starting sort
func WithSort(field string, order SortOrder) Option {
	return func(c *config) {
		c.sortField = field
		c.sortOrder = order
	}
}

// WithFetchTimeout bounds every data source call
func WithFetchTimeout(d time.Duration) Option {
	return func(c *config) { c.fetchTimeout = d }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetrics records fetch outcomes in m
func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithEventBuffer sets the capacity of the Subscribe channel
func WithEventBuffer(n int) Option {
	return func(c *config) { c.bufferSize = n }
}
