package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DefaultLimit is the number of rows returned per page when no limit is given
	DefaultLimit = 10
	// MaxLimit caps the page size a caller may request
	MaxLimit = 100
)

// Base carries the identity, timestamps and soft-delete marker shared by every entity
type Base struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// BeforeCreate assigns a UUID when the caller did not
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// IsDeleted reports whether the row is soft-deleted
func (b Base) IsDeleted() bool {
	return b.DeletedAt.Valid
}

// DeletedStatus filters rows by soft-delete state
type DeletedStatus string

const (
	// DeletedStatusAll returns active and deleted rows
	DeletedStatusAll DeletedStatus = ""
	// DeletedStatusOnly returns only deleted rows
	DeletedStatusOnly DeletedStatus = "true"
	// DeletedStatusActive returns only active rows
	DeletedStatusActive DeletedStatus = "false"
)

// ParseDeletedStatus parses the deletedStatus query value
func ParseDeletedStatus(s string) (DeletedStatus, error) {
	switch DeletedStatus(s) {
	case DeletedStatusAll, DeletedStatusOnly, DeletedStatusActive:
		return DeletedStatus(s), nil
	default:
		return "", fmt.Errorf("invalid deleted status %q: must be empty, true or false", s)
	}
}

// SortDirection orders list results
type SortDirection string

const (
	// SortAsc sorts ascending
	SortAsc SortDirection = "asc"
	// SortDesc sorts descending
	SortDesc SortDirection = "desc"
)

// ListOptions represents pagination, sorting and filtering for list operations.
// Column names in Sort, Filters and Search must come from a whitelist; they
// are not escaped.
type ListOptions struct {
	Limit         int               `json:"limit"`
	Offset        int               `json:"offset"`
	DeletedStatus DeletedStatus     `json:"deletedStatus"`
	SortColumn    string            `json:"sortColumn,omitempty"`
	SortDirection SortDirection     `json:"sortDirection,omitempty"`
	Filters       map[string]string `json:"filters,omitempty"` // column -> exact value
	Search        map[string]string `json:"search,omitempty"`  // column -> case-insensitive substring
}
