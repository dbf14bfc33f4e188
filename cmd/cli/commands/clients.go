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

const (
	flagName        = "name"
	flagCode        = "code"
	flagDescription = "description"
)

var clientColumns = columns[models.Client]{
	headers: []string{"ID", "CODE", "NAME", "EMAIL", "DELETED"},
	row: func(c models.Client) []string {
		return []string{c.ID, c.ClientCode, c.Name, c.Email, deletedMark(c.IsDeleted())}
	},
}

func clients() *client.Resource[models.Client, handlers.ClientCreateParams, handlers.ClientUpdateParams] {
	return apiClient.Clients()
}

func newClientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage clients",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, permissions.Clients, listings.Clients(apiClient, listOpts), clientColumns)
		},
	}
	addListFlags(list, permissions.Clients)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireWrite(permissions.Clients); err != nil {
				return err
			}
			params := handlers.ClientCreateParams{
				Name:        valueOr(changedString(cmd, flagName), ""),
				ClientCode:  valueOr(changedString(cmd, flagCode), ""),
				Email:       valueOr(changedString(cmd, flagEmail), ""),
				Description: valueOr(changedString(cmd, flagDescription), ""),
			}
			c, err := clients().Create(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("error creating client: %w", err)
			}
			return printRecord(cmd, c, clientColumns.headers, clientColumns.row(c))
		},
	}
	addClientFlags(create)
	mustMarkRequired(create, flagName, flagCode)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a client; only the flags given are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireWrite(permissions.Clients); err != nil {
				return err
			}
			params := handlers.ClientUpdateParams{
				Name:        changedString(cmd, flagName),
				ClientCode:  changedString(cmd, flagCode),
				Email:       changedString(cmd, flagEmail),
				Description: changedString(cmd, flagDescription),
			}
			c, err := clients().Update(cmd.Context(), args[0], params)
			if err != nil {
				return fmt.Errorf("error updating client: %w", err)
			}
			return printRecord(cmd, c, clientColumns.headers, clientColumns.row(c))
		},
	}
	addClientFlags(update)

	cmd.AddCommand(
		list,
		newGetCmd(clients, clientColumns),
		create,
		update,
		newDeleteCmd(clients),
		newRestoreCmd(clients, clientColumns),
	)
	return cmd
}

func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagName, "n", "", "Client name")
	cmd.Flags().String(flagCode, "", "Unique client code")
	cmd.Flags().StringP(flagEmail, "e", "", "Contact email")
	cmd.Flags().StringP(flagDescription, "d", "", "Description")
}
