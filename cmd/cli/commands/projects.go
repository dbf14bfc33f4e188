package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/forms"
	"github.com/hasnain-nisan/admindash/internal/listings"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/client"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/handlers"
)

const flagStakeholderIDs = "stakeholder-ids"

var projectColumns = columns[models.Project]{
	headers: []string{"ID", "NAME", "CLIENT", "STAKEHOLDERS", "DELETED"},
	row: func(p models.Project) []string {
		clientName := p.ClientID
		if p.Client != nil {
			clientName = p.Client.Name
		}
		return []string{p.ID, p.Name, clientName, strings.Join(p.StakeholderIDs, " "), deletedMark(p.IsDeleted())}
	},
}

func projects() *client.Resource[models.Project, handlers.ProjectCreateParams, handlers.ProjectUpdateParams] {
	return apiClient.Projects()
}

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, permissions.Projects, listings.Projects(apiClient, listOpts), projectColumns)
		},
	}
	addListFlags(list, permissions.Projects)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Long: `Create a project for a client. Stakeholders must belong to the same
client; the command checks them against the client's stakeholders first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := forms.NewProjectForm(apiClient, perms, listOpts.Logger)
			return submitProject(cmd, form)
		},
	}
	addProjectFlags(create)
	mustMarkRequired(create, flagName, flagClientID)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project; only the flags given are changed",
		Long: `Update a project. Changing the client drops the stakeholders that do
not belong to the new client unless --stakeholder-ids is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireWrite(permissions.Projects); err != nil {
				return err
			}
			existing, err := projects().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("error getting project: %w", err)
			}
			form := forms.NewProjectForm(apiClient, perms, listOpts.Logger)
			if err := form.Hydrate(cmd.Context(), existing); err != nil {
				return fmt.Errorf("error loading project options: %w", err)
			}
			return submitProject(cmd, form)
		},
	}
	addProjectFlags(update)

	cmd.AddCommand(
		list,
		newGetCmd(projects, projectColumns),
		create,
		update,
		newDeleteCmd(projects),
		newRestoreCmd(projects, projectColumns),
	)
	return cmd
}

// submitProject applies the flags the user set to form and submits it
func submitProject(cmd *cobra.Command, form *forms.ProjectForm) error {
	ctx := cmd.Context()
	if clientID := changedString(cmd, flagClientID); clientID != nil {
		if err := form.SetClient(ctx, *clientID); err != nil {
			return fmt.Errorf("error loading stakeholders: %w", err)
		}
	}
	if ids := changedSlice(cmd, flagStakeholderIDs); ids != nil {
		if err := form.SelectStakeholders(ids...); err != nil {
			return err
		}
	}
	current := form.Params()
	form.SetDetails(
		valueOr(changedString(cmd, flagName), current.Name),
		valueOr(changedString(cmd, flagDescription), current.Description),
	)

	p, err := form.Submit(ctx)
	if err != nil {
		return fmt.Errorf("error saving project: %w", err)
	}
	return printRecord(cmd, p, projectColumns.headers, projectColumns.row(p))
}

func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagName, "n", "", "Project name")
	cmd.Flags().StringP(flagDescription, "d", "", "Project description")
	cmd.Flags().String(flagClientID, "", "Client the project belongs to")
	cmd.Flags().StringSlice(flagStakeholderIDs, nil, "Stakeholders of the project's client")
}
