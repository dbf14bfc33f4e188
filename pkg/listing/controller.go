package listing

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hasnain-nisan/admindash/pkg/debounce"
)

// Trigger is the reaction that issued a fetch
type Trigger string

const (
	// TriggerMount is the first fetch after Mount
	TriggerMount Trigger = "mount"
	// TriggerFilters follows a filter, sort or page size change
	TriggerFilters Trigger = "filters"
	// TriggerPage follows a page navigation
	TriggerPage Trigger = "page"
	// TriggerRefetch follows RequestRefetch
	TriggerRefetch Trigger = "refetch"
)

// EventType is the kind of lifecycle event a controller publishes
type EventType string

const (
	// EventStarted is published when a fetch is issued
	EventStarted EventType = "started"
	// EventCompleted is published when the latest fetch succeeds
	EventCompleted EventType = "completed"
	// EventError is published when the latest fetch fails
	EventError EventType = "error"
)

// Event reports a fetch lifecycle step together with the state it produced
type Event[T any] struct {
	Type    EventType
	Trigger Trigger
	Seq     uint64
	Query   Query
	State   State[T]
	Err     error
}

// State is a snapshot of a controller
type State[T any] struct {
	// PageIndex is 0-indexed
	PageIndex      int
	PageSize       int
	Filters        map[string]string
	SortField      string
	SortOrder      SortOrder
	Loading        bool
	RefetchPending bool

	Items      []T
	Total      int
	TotalPages int
	LastError  error
}

func (s State[T]) clone() State[T] {
	out := s
	out.Filters = make(map[string]string, len(s.Filters))
	for k, v := range s.Filters {
		out.Filters[k] = v
	}
	out.Items = slices.Clone(s.Items)
	return out
}

// Controller keeps one list's filters, sort and pagination in step with its
// data source. Filter, sort and page size changes reset to the first page;
// page navigation fetches the requested page; RequestRefetch reloads the
// current page. Only the response to the most recently issued fetch is applied.
type Controller[T any] struct {
	ds           DataSource[T]
	name         string
	fields       map[string]FilterField
	pageSizes    []int
	fetchTimeout time.Duration
	logger       *zap.Logger
	metrics      *Metrics

	mu         sync.Mutex
	state      State[T]
	debouncers map[string]*debounce.Debouncer[string]
	seq        uint64
	refetchSeq uint64
	mounted    bool
	closed     bool
	ctx        context.Context
	cancel     context.CancelFunc
	inflight   context.CancelFunc
	idle       chan struct{}
	events     chan Event[T]
	wg         sync.WaitGroup
}

// New creates a controller over ds. Nothing is fetched until Mount.
func New[T any](ds DataSource[T], opts ...Option) *Controller[T] {
	cfg := config{
		name:       "list",
		pageSize:   DefaultPageSize,
		pageSizes:  DefaultPageSizes,
		logger:     zap.NewNop(),
		bufferSize: 64,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Controller[T]{
		ds:           ds,
		name:         cfg.name,
		fields:       make(map[string]FilterField, len(cfg.fields)),
		pageSizes:    cfg.pageSizes,
		fetchTimeout: cfg.fetchTimeout,
		logger:       cfg.logger.With(zap.String("list", cfg.name)),
		metrics:      cfg.metrics,
		debouncers:   make(map[string]*debounce.Debouncer[string]),
		idle:         make(chan struct{}),
		events:       make(chan Event[T], cfg.bufferSize),
	}
	close(c.idle)

	c.state = State[T]{
		PageSize:   cfg.pageSize,
		Filters:    make(map[string]string, len(cfg.fields)),
		SortField:  cfg.sortField,
		SortOrder:  cfg.sortOrder,
		Items:      []T{},
		TotalPages: 1,
	}

	for _, f := range cfg.fields {
		c.fields[f.Name] = f
		c.state.Filters[f.Name] = f.Default
		if f.Debounce > 0 {
			name := f.Name
			c.debouncers[name] = debounce.New(f.Debounce, func(v string) {
				c.mu.Lock()
				defer c.mu.Unlock()
				if c.closed {
					return
				}
				c.applyFilterLocked(name, v)
			})
		}
	}
	return c
}

// Mount issues the first fetch. Fetches run under contexts derived from ctx.
func (c *Controller[T]) Mount(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.mounted {
		return nil
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.mounted = true
	c.fetchLocked(TriggerMount)
	return nil
}

// SetFilter sets a filter value. Debounced filters apply once the value has
// been stable for the filter's delay.
func (c *Controller[T]) SetFilter(name, value string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if _, ok := c.fields[name]; !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}

	d, debounced := c.debouncers[name]
	if !debounced || !c.mounted {
		c.applyFilterLocked(name, value)
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	d.Set(value)
	return nil
}

// SetSort sets the sort field and order
func (c *Controller[T]) SetSort(field string, order SortOrder) error {
	if !order.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSortOrder, order)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.state.SortField == field && c.state.SortOrder == order {
		return nil
	}
	c.state.SortField = field
	c.state.SortOrder = order
	c.resetLocked()
	return nil
}

// SetPageIndex navigates to a 0-indexed page. Once mounted and settled,
// indexes past the last known page are clamped to it; while a fetch is in
// flight the page count is not yet known and the source clamps instead.
func (c *Controller[T]) SetPageIndex(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPage, n)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if last := c.state.TotalPages - 1; c.mounted && !c.state.Loading && n > last {
		n = max(last, 0)
	}
	if n == c.state.PageIndex {
		return nil
	}
	c.state.PageIndex = n
	c.fetchLocked(TriggerPage)
	return nil
}

// SetPageSize changes the page size and returns to the first page
func (c *Controller[T]) SetPageSize(n int) error {
	if !slices.Contains(c.pageSizes, n) {
		return fmt.Errorf("%w: %d (allowed %v)", ErrInvalidPageSize, n, c.pageSizes)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.state.PageSize == n {
		return nil
	}
	c.state.PageSize = n
	c.resetLocked()
	return nil
}

// RequestRefetch reloads the current page, typically after a mutation. The
// state reports RefetchPending until that fetch settles.
func (c *Controller[T]) RequestRefetch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.state.RefetchPending = true
	c.refetchSeq = c.seq + 1
	c.fetchLocked(TriggerRefetch)
}

// State returns a snapshot of the controller
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Query returns the query the current state maps to
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queryLocked()
}

// Subscribe returns the channel events are published on. Events are dropped
// when the channel is full. The channel is closed by Close.
func (c *Controller[T]) Subscribe() <-chan Event[T] {
	return c.events
}

// Settled blocks until no fetch is in flight and returns the resulting state
func (c *Controller[T]) Settled(ctx context.Context) (State[T], error) {
	for {
		c.mu.Lock()
		if !c.state.Loading || c.closed {
			st := c.state.clone()
			c.mu.Unlock()
			return st, nil
		}
		idle := c.idle
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return c.State(), ctx.Err()
		case <-idle:
		}
	}
}

// Close cancels in-flight fetches and pending debounced values. No event is
// published and no state changes after Close returns.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for _, d := range c.debouncers {
		d.Stop()
	}
	if c.cancel != nil {
		c.cancel()
	}
	if c.state.Loading {
		c.state.Loading = false
		close(c.idle)
	}
	close(c.events)
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Controller[T]) applyFilterLocked(name, value string) {
	if c.state.Filters[name] == value {
		return
	}
	c.state.Filters[name] = value
	for _, f := range c.fields {
		if f.DependsOn == name {
			c.state.Filters[f.Name] = f.Default
		}
	}
	c.resetLocked()
}

func (c *Controller[T]) resetLocked() {
	c.state.PageIndex = 0
	c.fetchLocked(TriggerFilters)
}

func (c *Controller[T]) queryLocked() Query {
	return Query{
		Page:      c.state.PageIndex + 1,
		PageSize:  c.state.PageSize,
		SortField: c.state.SortField,
		SortOrder: c.state.SortOrder,
		Filters:   normalize(c.fields, c.state.Filters),
	}
}

func (c *Controller[T]) fetchLocked(trigger Trigger) {
	if !c.mounted || c.closed {
		return
	}

	c.seq++
	seq := c.seq
	q := c.queryLocked()

	if c.inflight != nil {
		c.inflight()
	}
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.fetchTimeout > 0 {
		ctx, cancel = context.WithTimeout(c.ctx, c.fetchTimeout)
	} else {
		ctx, cancel = context.WithCancel(c.ctx)
	}
	c.inflight = cancel

	if !c.state.Loading {
		c.idle = make(chan struct{})
	}
	c.state.Loading = true

	c.logger.Debug("fetch started", zap.Uint64("seq", seq), zap.String("trigger", string(trigger)), zap.Stringer("query", q))
	c.publishLocked(Event[T]{Type: EventStarted, Trigger: trigger, Seq: seq, Query: q})

	c.wg.Add(1)
	go c.run(ctx, cancel, seq, trigger, q)
}

func (c *Controller[T]) run(ctx context.Context, cancel context.CancelFunc, seq uint64, trigger Trigger, q Query) {
	defer c.wg.Done()
	defer cancel()

	start := time.Now()
	page, err := c.ds(ctx, q)
	took := time.Since(start)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if seq != c.seq {
		c.metrics.discarded(c.name)
		c.logger.Debug("discarding stale response", zap.Uint64("seq", seq), zap.Uint64("latest", c.seq))
		return
	}
	c.metrics.observe(c.name, trigger, err, took)

	c.inflight = nil
	c.state.Loading = false
	close(c.idle)
	if seq >= c.refetchSeq {
		c.state.RefetchPending = false
	}

	if err != nil {
		c.state.LastError = err
		c.logger.Error("fetch failed", zap.Uint64("seq", seq), zap.Stringer("query", q), zap.Error(err))
		c.publishLocked(Event[T]{Type: EventError, Trigger: trigger, Seq: seq, Query: q, Err: err})
		return
	}

	c.state.Items = page.Items
	if c.state.Items == nil {
		c.state.Items = []T{}
	}
	c.state.Total = page.Total
	c.state.TotalPages = page.TotalPages
	if c.state.TotalPages < 1 {
		c.state.TotalPages = TotalPages(page.Total, c.state.PageSize)
	}
	// the source may have clamped an out-of-range page
	if page.CurrentPage >= 1 {
		c.state.PageIndex = page.CurrentPage - 1
	}
	c.state.LastError = nil

	c.logger.Debug("fetch completed", zap.Uint64("seq", seq), zap.Int("items", len(page.Items)), zap.Int("total", page.Total))
	c.publishLocked(Event[T]{Type: EventCompleted, Trigger: trigger, Seq: seq, Query: q})
}

func (c *Controller[T]) publishLocked(ev Event[T]) {
	ev.State = c.state.clone()
	select {
	case c.events <- ev:
	default:
		c.logger.Warn("event channel full, dropping event", zap.String("type", string(ev.Type)))
	}
}
