package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/forms"
	"github.com/hasnain-nisan/admindash/internal/listings"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/client"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/handlers"
)

const (
	flagDate      = "date"
	flagNotes     = "notes"
	flagProjectID = "project-id"
)

var interviewColumns = columns[models.Interview]{
	headers: []string{"ID", "NAME", "DATE", "CLIENT", "PROJECT", "STAKEHOLDERS", "DELETED"},
	row: func(in models.Interview) []string {
		return []string{
			in.ID,
			in.Name,
			in.Date.Format(time.DateOnly),
			in.ClientID,
			in.ProjectID,
			strings.Join(in.StakeholderIDs, " "),
			deletedMark(in.IsDeleted()),
		}
	},
}

func interviews() *client.Resource[models.Interview, handlers.InterviewCreateParams, handlers.InterviewUpdateParams] {
	return apiClient.Interviews()
}

func newInterviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interviews",
		Short: "Manage interviews",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List interviews",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, permissions.Interviews, listings.Interviews(apiClient, listOpts), interviewColumns)
		},
	}
	addListFlags(list, permissions.Interviews)

	create := &cobra.Command{
		Use:   "create",
		Short: "Record an interview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := forms.NewInterviewForm(apiClient, perms, listOpts.Logger)
			return submitInterview(cmd, form)
		},
	}
	addInterviewFlags(create)
	mustMarkRequired(create, flagName, flagDate, flagClientID, flagProjectID)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an interview; only the flags given are changed",
		Long: `Update an interview. Changing the client requires a project of the new
client and drops stakeholders that do not belong to it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireWrite(permissions.Interviews); err != nil {
				return err
			}
			existing, err := interviews().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("error getting interview: %w", err)
			}
			form := forms.NewInterviewForm(apiClient, perms, listOpts.Logger)
			if err := form.Hydrate(cmd.Context(), existing); err != nil {
				return fmt.Errorf("error loading interview options: %w", err)
			}
			return submitInterview(cmd, form)
		},
	}
	addInterviewFlags(update)

	cmd.AddCommand(
		list,
		newGetCmd(interviews, interviewColumns),
		create,
		update,
		newDeleteCmd(interviews),
		newRestoreCmd(interviews, interviewColumns),
	)
	return cmd
}

// submitInterview applies the flags the user set to form and submits it
func submitInterview(cmd *cobra.Command, form *forms.InterviewForm) error {
	ctx := cmd.Context()
	if clientID := changedString(cmd, flagClientID); clientID != nil {
		if err := form.SetClient(ctx, *clientID); err != nil {
			return fmt.Errorf("error loading client options: %w", err)
		}
	}
	if projectID := changedString(cmd, flagProjectID); projectID != nil {
		if err := form.SelectProject(*projectID); err != nil {
			return err
		}
	}
	if ids := changedSlice(cmd, flagStakeholderIDs); ids != nil {
		if err := form.SelectStakeholders(ids...); err != nil {
			return err
		}
	}

	current := form.Params()
	date := current.Date
	if s := changedString(cmd, flagDate); s != nil {
		d, err := parseDate(*s)
		if err != nil {
			return err
		}
		date = d
	}
	form.SetDetails(
		valueOr(changedString(cmd, flagName), current.Name),
		date,
		valueOr(changedString(cmd, flagNotes), current.Notes),
	)

	in, err := form.Submit(ctx)
	if err != nil {
		return fmt.Errorf("error saving interview: %w", err)
	}
	return printRecord(cmd, in, interviewColumns.headers, interviewColumns.row(in))
}

func addInterviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagName, "n", "", "Interview name")
	cmd.Flags().String(flagDate, "", "Interview date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().String(flagNotes, "", "Notes")
	cmd.Flags().String(flagClientID, "", "Client interviewed")
	cmd.Flags().String(flagProjectID, "", "Project of the client")
	cmd.Flags().StringSlice(flagStakeholderIDs, nil, "Stakeholders of the client who took part")
}
