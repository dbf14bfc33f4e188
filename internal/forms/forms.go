// Package forms implements the interview and project forms. Their dependent
// selections are kept consistent with the chosen client by cascade selectors.
package forms

import (
	"context"
	"errors"
	"fmt"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/internal/validation"
	"github.com/hasnain-nisan/admindash/pkg/listing"
)

// GenericErrorMessage is shown when a failed submission carries no message
const GenericErrorMessage = "Something went wrong. Please try again."

// ValidationErrors holds per-field problems found before submitting
type ValidationErrors = validation.Errors

// ErrForbidden is returned by Submit when the permission set lacks the write
// scope of the form's resource
var ErrForbidden = errors.New("not allowed")

// optionsPageSize is the page size used when loading select options
const optionsPageSize = 100

// ErrorMessage returns the text to show for a failed submission: the server
// message when there is one, the field errors for a validation failure, and
// GenericErrorMessage otherwise
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Error()
	}
	var ferr *fiber.Error
	if errors.As(err, &ferr) && ferr.Message != "" {
		return ferr.Message
	}
	if errors.Is(err, ErrForbidden) {
		return err.Error()
	}
	return GenericErrorMessage
}

func authorize(p permissions.PermissionSet, resource string) error {
	if !p.CanWrite(resource) {
		return fmt.Errorf("%w: missing scope %s", ErrForbidden, permissions.Scope(resource, permissions.Write))
	}
	return nil
}

// pager fetches one page, like a listing.DataSource
type pager[T any] func(ctx context.Context, q listing.Query) (listing.Page[T], error)

// activeOf returns a cascade fetch func loading every active row whose filter
// equals the parent value
func activeOf[T any](list pager[T], filter string) func(ctx context.Context, parent string) ([]T, error) {
	return func(ctx context.Context, parent string) ([]T, error) {
		var out []T
		for page := 1; ; page++ {
			p, err := list(ctx, listing.Query{
				Page:      page,
				PageSize:  optionsPageSize,
				SortField: "name",
				SortOrder: listing.SortAsc,
				Filters: map[string]string{
					filter:          parent,
					"deletedStatus": "false",
				},
			})
			if err != nil {
				return nil, err
			}
			out = append(out, p.Items...)
			if page >= p.TotalPages || len(p.Items) == 0 {
				return out, nil
			}
		}
	}
}

// nonNil turns a nil selection into an empty one, which an update sends as
// [] to clear the list rather than null to keep it
func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
