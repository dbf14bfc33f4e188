// Package repos holds the gorm-backed repositories
package repos

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hasnain-nisan/admindash/internal/db/models"
)

// Repository implements the list, get, create, update, soft delete and
// restore operations shared by every entity.
type Repository[T any] struct {
	db       *gorm.DB
	name     string
	preloads []string
}

// NewRepository creates a repository for T. name is used in error messages;
// preloads are the associations loaded with every read.
func NewRepository[T any](db *gorm.DB, name string, preloads ...string) *Repository[T] {
	return &Repository[T]{db: db, name: name, preloads: preloads}
}

func (r *Repository[T]) read(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p, func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() })
	}
	return q
}

// Create inserts v
func (r *Repository[T]) Create(ctx context.Context, v *T) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", r.name, err)
	}
	return nil
}

// Get retrieves a row by id, including soft-deleted rows.
// Returns ErrRecordNotFound if the row doesn't exist
func (r *Repository[T]) Get(ctx context.Context, id string) (*T, error) {
	var v T
	err := r.read(ctx).Unscoped().Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s not found: %w", r.name, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", r.name, err)
	}
	return &v, nil
}

// GetActive retrieves a row by id, excluding soft-deleted rows
func (r *Repository[T]) GetActive(ctx context.Context, id string) (*T, error) {
	var v T
	err := r.read(ctx).Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s not found: %w", r.name, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", r.name, err)
	}
	return &v, nil
}

// List returns one page of rows and the number of rows matching opts
func (r *Repository[T]) List(ctx context.Context, opts *models.ListOptions) ([]T, int64, error) {
	if opts == nil {
		opts = &models.ListOptions{}
	}
	var total int64
	counted := applyListFilters(r.db.WithContext(ctx).Model(new(T)), opts)
	if err := counted.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count %s rows: %w", r.name, err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = models.DefaultLimit
	}

	rows := make([]T, 0, limit)
	err := applySort(applyListFilters(r.read(ctx).Model(new(T)), opts), opts).
		Limit(limit).
		Offset(opts.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s rows: %w", r.name, err)
	}
	return rows, total, nil
}

// Update saves every field of v
func (r *Repository[T]) Update(ctx context.Context, v *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(v).Error; err != nil {
		return fmt.Errorf("failed to update %s: %w", r.name, err)
	}
	return nil
}

// Delete soft-deletes the active row with id
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", r.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s not found: %w", r.name, gorm.ErrRecordNotFound)
	}
	return nil
}

// Restore clears the soft-delete marker of the row with id
func (r *Repository[T]) Restore(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Unscoped().Model(new(T)).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return fmt.Errorf("failed to restore %s: %w", r.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("deleted %s not found: %w", r.name, gorm.ErrRecordNotFound)
	}
	return nil
}

// Count returns the number of active rows matching the exact column filters
func (r *Repository[T]) Count(ctx context.Context, filters map[string]string) (int64, error) {
	var n int64
	q := applyListFilters(r.db.WithContext(ctx).Model(new(T)), &models.ListOptions{
		DeletedStatus: models.DeletedStatusActive,
		Filters:       filters,
	})
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s rows: %w", r.name, err)
	}
	return n, nil
}

func applyListFilters(q *gorm.DB, opts *models.ListOptions) *gorm.DB {
	switch opts.DeletedStatus {
	case models.DeletedStatusOnly:
		q = q.Unscoped().Where("deleted_at IS NOT NULL")
	case models.DeletedStatusActive:
		// default scope
	default:
		q = q.Unscoped()
	}

	for _, col := range sortedKeys(opts.Filters) {
		q = q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: opts.Filters[col]})
	}
	for _, col := range sortedKeys(opts.Search) {
		term := strings.ToLower(strings.TrimSpace(opts.Search[col]))
		if term == "" {
			continue
		}
		q = q.Where(fmt.Sprintf("LOWER(%s) LIKE ?", col), "%"+term+"%")
	}
	return q
}

func applySort(q *gorm.DB, opts *models.ListOptions) *gorm.DB {
	if opts.SortColumn != "" {
		q = q.Order(clause.OrderByColumn{
			Column: clause.Column{Name: opts.SortColumn},
			Desc:   opts.SortDirection == models.SortDesc,
		})
	} else {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true})
	}
	// stable pages when the sort column has ties
	return q.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
