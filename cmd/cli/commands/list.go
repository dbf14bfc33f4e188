package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hasnain-nisan/admindash/internal/listings"
	"github.com/hasnain-nisan/admindash/pkg/listing"
)

// list flag names
const (
	flagPage  = "page"
	flagLimit = "limit"
	flagSort  = "sort"
	flagOrder = "order"
)

// filterFlags maps a list filter to its flag
var filterFlags = map[string]string{
	listings.FilterName:          "name",
	listings.FilterEmail:         "email",
	listings.FilterClientCode:    "client-code",
	listings.FilterRole:          "role",
	listings.FilterClientID:      "client-id",
	listings.FilterProjectID:     "project-id",
	listings.FilterDeletedStatus: "deleted-status",
}

// listOutput is the JSON shape of a list command
type listOutput[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// columns renders records as table rows
type columns[T any] struct {
	headers []string
	row     func(T) []string
}

func addListFlags(cmd *cobra.Command, resource string) {
	cmd.Flags().IntP(flagPage, "p", 1, "Page number for pagination")
	cmd.Flags().IntP(flagLimit, "l", 0, "Page size (10, 20, 30, 40 or 50; default from config)")
	cmd.Flags().String(flagSort, "", "Field to sort by")
	cmd.Flags().String(flagOrder, string(listing.SortAsc), "Sort order: asc or desc")
	for _, f := range listings.Fields(resource) {
		usage := "Filter by " + f.Name
		switch {
		case f.Name == listings.FilterDeletedStatus:
			usage = `Deleted status: "" all, "true" deleted only, "false" active only`
		case f.Default == listing.SentinelAll:
			usage += ` ("all" for no filter)`
		}
		cmd.Flags().String(filterFlags[f.Name], f.Default, usage)
	}
}

// runList drives a list controller from the command's flags and prints the
// page it settles on
func runList[T any](cmd *cobra.Command, resource string, ctrl *listing.Controller[T], t columns[T]) error {
	defer ctrl.Close()
	if err := checkOutputFormat(); err != nil {
		return err
	}

	if limit, _ := cmd.Flags().GetInt(flagLimit); limit > 0 {
		if err := ctrl.SetPageSize(limit); err != nil {
			return err
		}
	}
	if sort, _ := cmd.Flags().GetString(flagSort); sort != "" {
		order, _ := cmd.Flags().GetString(flagOrder)
		if err := ctrl.SetSort(sort, listing.SortOrder(strings.ToLower(order))); err != nil {
			return err
		}
	}
	for _, f := range listings.Fields(resource) {
		flag := cmd.Flags().Lookup(filterFlags[f.Name])
		if flag == nil || !flag.Changed {
			continue
		}
		if err := ctrl.SetFilter(f.Name, flag.Value.String()); err != nil {
			return err
		}
	}
	// filters reset the page, so navigate last
	page, _ := cmd.Flags().GetInt(flagPage)
	if page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", page)
	}
	if err := ctrl.SetPageIndex(page - 1); err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := ctrl.Mount(ctx); err != nil {
		return err
	}
	st, err := ctrl.Settled(ctx)
	if err != nil {
		return err
	}
	if st.LastError != nil {
		return fmt.Errorf("error listing %s: %w", resource, st.LastError)
	}

	if outputFormat == outputTable {
		rows := make([][]string, 0, len(st.Items))
		for _, item := range st.Items {
			rows = append(rows, t.row(item))
		}
		footer := fmt.Sprintf("page %d of %d, %d total", st.PageIndex+1, st.TotalPages, st.Total)
		if actions := allowedActions(resource); actions != "" {
			footer += "; you may " + actions
		}
		return printTable(cmd, t.headers, rows, footer)
	}
	return printJSON(cmd, listOutput[T]{
		Items:      st.Items,
		Total:      st.Total,
		Page:       st.PageIndex + 1,
		TotalPages: st.TotalPages,
	})
}

func allowedActions(resource string) string {
	a := listings.ActionsFor(perms, resource)
	var out []string
	for _, action := range []struct {
		name    string
		allowed bool
	}{
		{"create", a.Create},
		{"edit", a.Edit},
		{"delete", a.Delete},
		{"restore", a.Restore},
	} {
		if action.allowed {
			out = append(out, action.name)
		}
	}
	return strings.Join(out, ", ")
}
