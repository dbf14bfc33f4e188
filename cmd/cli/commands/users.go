package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/listings"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/client"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/handlers"
)

const (
	flagEmail  = "email"
	flagRole   = "role"
	flagScopes = "scopes"
)

var userColumns = columns[models.User]{
	headers: []string{"ID", "NAME", "EMAIL", "ROLE", "SCOPES", "DELETED"},
	row: func(u models.User) []string {
		return []string{u.ID, u.Name, u.Email, u.Role.String(), strings.Join(u.AccessScopes, " "), deletedMark(u.IsDeleted())}
	},
}

func users() *client.Resource[models.User, handlers.UserCreateParams, handlers.UserUpdateParams] {
	return apiClient.Users()
}

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, permissions.Users, listings.Users(apiClient, listOpts), userColumns)
		},
	}
	addListFlags(list, permissions.Users)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireWrite(permissions.Users); err != nil {
				return err
			}
			params := handlers.UserCreateParams{
				Name:         valueOr(changedString(cmd, flagName), ""),
				Email:        valueOr(changedString(cmd, flagEmail), ""),
				Role:         valueOr(changedString(cmd, flagRole), ""),
				AccessScopes: changedSlice(cmd, flagScopes),
			}
			user, err := users().Create(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("error creating user: %w", err)
			}
			return printRecord(cmd, user, userColumns.headers, userColumns.row(user))
		},
	}
	addUserFlags(create)
	mustMarkRequired(create, flagName, flagEmail)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user; only the flags given are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireWrite(permissions.Users); err != nil {
				return err
			}
			params := handlers.UserUpdateParams{
				Name:         changedString(cmd, flagName),
				Email:        changedString(cmd, flagEmail),
				Role:         changedString(cmd, flagRole),
				AccessScopes: changedSlice(cmd, flagScopes),
			}
			user, err := users().Update(cmd.Context(), args[0], params)
			if err != nil {
				return fmt.Errorf("error updating user: %w", err)
			}
			return printRecord(cmd, user, userColumns.headers, userColumns.row(user))
		},
	}
	addUserFlags(update)

	cmd.AddCommand(
		list,
		newGetCmd(users, userColumns),
		create,
		update,
		newDeleteCmd(users),
		newRestoreCmd(users, userColumns),
	)
	return cmd
}

func addUserFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagName, "n", "", "User name")
	cmd.Flags().StringP(flagEmail, "e", "", "User email")
	cmd.Flags().StringP(flagRole, "r", "", "Role: viewer, editor or admin")
	cmd.Flags().StringSlice(flagScopes, nil, "Extra access scopes, e.g. clients:write")
}
