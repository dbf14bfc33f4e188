package listing

import "errors"

var (
	// ErrUnknownFilter is returned when setting a filter the controller does not declare
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrInvalidPage is returned for a negative page index
	ErrInvalidPage = errors.New("invalid page index")
	// ErrInvalidPageSize is returned for a page size outside the allowed set
	ErrInvalidPageSize = errors.New("invalid page size")
	// ErrInvalidSortOrder is returned for a sort order other than asc or desc
	ErrInvalidSortOrder = errors.New("invalid sort order")
	// ErrClosed is returned by setters after Close
	ErrClosed = errors.New("controller closed")
)
