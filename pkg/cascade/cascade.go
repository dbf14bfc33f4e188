// Package cascade keeps a child selection consistent with the parent it
// depends on, such as the projects available for a chosen client.
package cascade

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// Mode is the selection cardinality of the child field
type Mode int

const (
	// Single holds at most one selected child
	Single Mode = iota
	// Multi holds any number of selected children
	Multi
)

func (m Mode) String() string {
	if m == Multi {
		return "multi"
	}
	return "single"
}

// ErrUnknownChild is returned when selecting an id not among the loaded children
var ErrUnknownChild = errors.New("not an option for the selected parent")

// FetchFunc loads the children available for parent
type FetchFunc[T any] func(ctx context.Context, parent string) ([]T, error)

// State is a snapshot of a Selector
type State[T any] struct {
	Parent    string
	Children  []T
	Selection []string
	// Hydrated is set once the selector was populated from an existing record
	Hydrated bool
	// Loaded reports whether Children belong to Parent
	Loaded bool
}

// Selected returns the single selected id, or "" when nothing is selected
func (s State[T]) Selected() string {
	if len(s.Selection) == 0 {
		return ""
	}
	return s.Selection[0]
}

// Selector tracks a parent value, the children loaded for it and the selected
// children. A user-driven parent change clears a single selection and narrows
// a multi selection to the new children; hydrating from an existing record
// leaves the selection untouched.
type Selector[T any] struct {
	fetch  FetchFunc[T]
	id     func(T) string
	mode   Mode
	logger *zap.Logger

	mu    sync.Mutex
	state State[T]
	seq   uint64
}

// Option configures a Selector
type Option func(*selectorOptions)

type selectorOptions struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for discarded and failed loads
func WithLogger(l *zap.Logger) Option {
	return func(o *selectorOptions) { o.logger = l }
}

// New creates a selector loading children with fetch and identifying them with id
func New[T any](fetch FetchFunc[T], id func(T) string, mode Mode, opts ...Option) *Selector[T] {
	o := selectorOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Selector[T]{
		fetch:  fetch,
		id:     id,
		mode:   mode,
		logger: o.logger,
		state:  State[T]{Children: []T{}, Selection: []string{}},
	}
}

// Hydrate populates the selector from an existing record and loads the
// children for parent. The selection is kept as given.
func (s *Selector[T]) Hydrate(ctx context.Context, parent string, selection ...string) error {
	s.mu.Lock()
	if s.mode == Single && len(selection) > 1 {
		selection = selection[:1]
	}
	s.state.Parent = parent
	s.state.Selection = slices.Clone(selection)
	if s.state.Selection == nil {
		s.state.Selection = []string{}
	}
	s.state.Children = []T{}
	s.state.Loaded = false
	s.state.Hydrated = true
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	if parent == "" {
		s.mu.Lock()
		s.state.Loaded = true
		s.mu.Unlock()
		return nil
	}
	return s.load(ctx, seq, parent, false)
}

// SetParent applies a user-driven parent change. An empty parent clears the
// children and the selection.
func (s *Selector[T]) SetParent(ctx context.Context, parent string) error {
	s.mu.Lock()
	changed := parent != s.state.Parent
	if !changed && (s.state.Loaded || parent == "") {
		s.mu.Unlock()
		return nil
	}

	s.state.Parent = parent
	s.state.Children = []T{}
	s.state.Loaded = false
	s.seq++
	seq := s.seq

	if parent == "" {
		s.state.Selection = []string{}
		s.state.Loaded = true
		s.mu.Unlock()
		return nil
	}
	if changed && s.mode == Single {
		s.state.Selection = []string{}
	}
	s.mu.Unlock()

	return s.load(ctx, seq, parent, changed && s.mode == Multi)
}

func (s *Selector[T]) load(ctx context.Context, seq uint64, parent string, intersect bool) error {
	children, err := s.fetch(ctx, parent)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.logger.Debug("discarding children for superseded parent", zap.String("parent", parent))
		return nil
	}
	if err != nil {
		s.logger.Warn("failed to load children", zap.String("parent", parent), zap.Error(err))
		// ids picked under the previous parent cannot be checked against this one
		if intersect {
			s.state.Selection = []string{}
		}
		return fmt.Errorf("load options for %s: %w", parent, err)
	}

	if children == nil {
		children = []T{}
	}
	s.state.Children = children
	s.state.Loaded = true

	if intersect {
		kept := make([]string, 0, len(s.state.Selection))
		for _, sel := range s.state.Selection {
			if s.hasChildLocked(sel) {
				kept = append(kept, sel)
			}
		}
		s.state.Selection = kept
	}
	return nil
}

// Select replaces the selection. In Single mode at most one id is accepted.
// Once children are loaded, every id must be one of them.
func (s *Selector[T]) Select(ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == Single && len(ids) > 1 {
		return fmt.Errorf("single selection accepts one value, got %d", len(ids))
	}
	if s.state.Loaded {
		for _, id := range ids {
			if !s.hasChildLocked(id) {
				return fmt.Errorf("%w: %s", ErrUnknownChild, id)
			}
		}
	}
	s.state.Selection = slices.Clone(ids)
	if s.state.Selection == nil {
		s.state.Selection = []string{}
	}
	return nil
}

// Clear empties the selection
func (s *Selector[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Selection = []string{}
}

// State returns a snapshot of the selector
func (s *Selector[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	out.Children = slices.Clone(s.state.Children)
	out.Selection = slices.Clone(s.state.Selection)
	return out
}

func (s *Selector[T]) hasChildLocked(id string) bool {
	for _, c := range s.state.Children {
		if s.id(c) == id {
			return true
		}
	}
	return false
}
