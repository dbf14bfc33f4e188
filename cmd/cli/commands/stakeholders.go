package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/listings"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/client"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/handlers"
)

const flagClientID = "client-id"

var stakeholderColumns = columns[models.Stakeholder]{
	headers: []string{"ID", "NAME", "EMAIL", "ROLE", "CLIENT", "DELETED"},
	row: func(s models.Stakeholder) []string {
		return []string{s.ID, s.Name, s.Email, s.Role, stakeholderClient(s), deletedMark(s.IsDeleted())}
	},
}

// stakeholderClient names the stakeholder's client, which may be absent
func stakeholderClient(s models.Stakeholder) string {
	switch {
	case s.Client != nil:
		return s.Client.Name
	case s.ClientID != nil:
		return *s.ClientID
	default:
		return "-"
	}
}

func stakeholders() *client.Resource[models.Stakeholder, handlers.StakeholderCreateParams, handlers.StakeholderUpdateParams] {
	return apiClient.Stakeholders()
}

func newStakeholdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stakeholders",
		Short: "Manage stakeholders",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stakeholders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, permissions.Stakeholders, listings.Stakeholders(apiClient, listOpts), stakeholderColumns)
		},
	}
	addListFlags(list, permissions.Stakeholders)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a stakeholder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireWrite(permissions.Stakeholders); err != nil {
				return err
			}
			params := handlers.StakeholderCreateParams{
				Name:     valueOr(changedString(cmd, flagName), ""),
				Email:    valueOr(changedString(cmd, flagEmail), ""),
				Role:     valueOr(changedString(cmd, flagRole), ""),
				ClientID: changedString(cmd, flagClientID),
			}
			s, err := stakeholders().Create(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("error creating stakeholder: %w", err)
			}
			return printRecord(cmd, s, stakeholderColumns.headers, stakeholderColumns.row(s))
		},
	}
	addStakeholderFlags(create)
	mustMarkRequired(create, flagName)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a stakeholder; --client-id \"\" detaches it from its client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireWrite(permissions.Stakeholders); err != nil {
				return err
			}
			params := handlers.StakeholderUpdateParams{
				Name:     changedString(cmd, flagName),
				Email:    changedString(cmd, flagEmail),
				Role:     changedString(cmd, flagRole),
				ClientID: changedString(cmd, flagClientID),
			}
			s, err := stakeholders().Update(cmd.Context(), args[0], params)
			if err != nil {
				return fmt.Errorf("error updating stakeholder: %w", err)
			}
			return printRecord(cmd, s, stakeholderColumns.headers, stakeholderColumns.row(s))
		},
	}
	addStakeholderFlags(update)

	cmd.AddCommand(
		list,
		newGetCmd(stakeholders, stakeholderColumns),
		create,
		update,
		newDeleteCmd(stakeholders),
		newRestoreCmd(stakeholders, stakeholderColumns),
	)
	return cmd
}

func addStakeholderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagName, "n", "", "Stakeholder name")
	cmd.Flags().StringP(flagEmail, "e", "", "Stakeholder email")
	cmd.Flags().StringP(flagRole, "r", "", "Job title or role")
	cmd.Flags().String(flagClientID, "", "Client the stakeholder belongs to")
}
