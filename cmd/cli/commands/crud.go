package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hasnain-nisan/admindash/internal/forms"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/client"
)

// resourceFunc returns the client resource a command works on. It is called
// when the command runs, after the client has been initialised.
type resourceFunc[T, C, U any] func() *client.Resource[T, C, U]

// requireWrite fails fast when the token lacks the write scope of resource
func requireWrite(resource string) error {
	if !perms.CanWrite(resource) {
		return fmt.Errorf("%w: missing scope %s", forms.ErrForbidden, permissions.Scope(resource, permissions.Write))
	}
	return nil
}

func newGetCmd[T, C, U any](res resourceFunc[T, C, U], t columns[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a record by id, including deleted records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := res()
			v, err := r.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("error getting %s: %w", r.Name(), err)
			}
			return printRecord(cmd, v, t.headers, t.row(v))
		},
	}
}

func newDeleteCmd[T, C, U any](res resourceFunc[T, C, U]) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Soft-delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := res()
			if err := requireWrite(r.Name()); err != nil {
				return err
			}
			if err := r.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("error deleting %s: %w", r.Name(), err)
			}
			return printJSON(cmd, map[string]string{"deleted": args[0]})
		},
	}
}

func newRestoreCmd[T, C, U any](res resourceFunc[T, C, U], t columns[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a soft-deleted record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := res()
			if err := requireWrite(r.Name()); err != nil {
				return err
			}
			v, err := r.Restore(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("error restoring %s: %w", r.Name(), err)
			}
			return printRecord(cmd, v, t.headers, t.row(v))
		},
	}
}

// changedString returns the flag's value when the user set it, nil otherwise
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// changedSlice returns the flag's values when the user set it, nil otherwise.
// An explicitly empty flag yields an empty, non-nil slice.
func changedSlice(cmd *cobra.Command, name string) []string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetStringSlice(name)
	if v == nil {
		v = []string{}
	}
	return v
}

func valueOr(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}

// parseDate accepts RFC 3339 timestamps and plain dates
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

func mustMarkRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Errorf("failed to mark %s flag as required for %s command: %w", name, cmd.Name(), err))
		}
	}
}
