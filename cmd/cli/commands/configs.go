package commands

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/listings"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/client"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/handlers"
	"github.com/hasnain-nisan/admindash/pkg/listing"
)

const (
	flagBody     = "body"
	flagBodyFile = "body-file"
	flagVersion  = "version"
)

var configColumns = columns[models.Config]{
	headers: []string{"ID", "NAME", "VERSION", "CLIENT", "PROJECT", "UPDATED", "DELETED"},
	row: func(c models.Config) []string {
		return []string{
			c.ID,
			c.Name,
			strconv.Itoa(c.Version),
			c.ClientID,
			c.ProjectID,
			c.UpdatedAt.Format(time.RFC3339),
			deletedMark(c.IsDeleted()),
		}
	},
}

var configVersionColumns = columns[models.ConfigVersion]{
	headers: []string{"VERSION", "CREATED", "BODY"},
	row: func(v models.ConfigVersion) []string {
		return []string{strconv.Itoa(v.Version), v.CreatedAt.Format(time.RFC3339), v.Body}
	},
}

func configs() *client.Resource[models.Config, handlers.ConfigCreateParams, handlers.ConfigUpdateParams] {
	return apiClient.Configs().Resource
}

func newConfigsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configs",
		Short: "Manage versioned configs",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List configs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, permissions.Configs, listings.Configs(apiClient, listOpts), configColumns)
		},
	}
	addListFlags(list, permissions.Configs)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a config at version 1",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireWrite(permissions.Configs); err != nil {
				return err
			}
			body, err := configBody(cmd)
			if err != nil {
				return err
			}
			params := handlers.ConfigCreateParams{
				Name:      valueOr(changedString(cmd, flagName), ""),
				ClientID:  valueOr(changedString(cmd, flagClientID), ""),
				ProjectID: valueOr(changedString(cmd, flagProjectID), ""),
				Body:      valueOr(body, ""),
			}
			c, err := configs().Create(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("error creating config: %w", err)
			}
			return printRecord(cmd, c, configColumns.headers, configColumns.row(c))
		},
	}
	addConfigFlags(create)
	mustMarkRequired(create, flagName, flagClientID, flagProjectID)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a config and bump its version",
		Long: `Update a config. The previous body is kept as a version. With --version
the update fails if the config has changed since that version was read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireWrite(permissions.Configs); err != nil {
				return err
			}
			body, err := configBody(cmd)
			if err != nil {
				return err
			}
			version, _ := cmd.Flags().GetInt(flagVersion)
			params := handlers.ConfigUpdateParams{
				Version:   version,
				Name:      changedString(cmd, flagName),
				ClientID:  changedString(cmd, flagClientID),
				ProjectID: changedString(cmd, flagProjectID),
				Body:      body,
			}
			c, err := configs().Update(cmd.Context(), args[0], params)
			if err != nil {
				return fmt.Errorf("error updating config: %w", err)
			}
			return printRecord(cmd, c, configColumns.headers, configColumns.row(c))
		},
	}
	addConfigFlags(update)
	update.Flags().Int(flagVersion, 0, "Expected current version (0 skips the check)")

	versions := &cobra.Command{
		Use:   "versions <id>",
		Short: "List the previous versions of a config, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutputFormat(); err != nil {
				return err
			}
			page, _ := cmd.Flags().GetInt(flagPage)
			limit, _ := cmd.Flags().GetInt(flagLimit)
			if page < 1 {
				return fmt.Errorf("page must be at least 1, got %d", page)
			}
			res, err := apiClient.Configs().Versions(cmd.Context(), args[0], listing.Query{Page: page, PageSize: limit})
			if err != nil {
				return fmt.Errorf("error listing config versions: %w", err)
			}
			if outputFormat == outputTable {
				rows := make([][]string, 0, len(res.Items))
				for _, v := range res.Items {
					rows = append(rows, configVersionColumns.row(v))
				}
				footer := fmt.Sprintf("page %d of %d, %d total", res.CurrentPage, res.TotalPages, res.Total)
				return printTable(cmd, configVersionColumns.headers, rows, footer)
			}
			return printJSON(cmd, listOutput[models.ConfigVersion]{
				Items:      res.Items,
				Total:      res.Total,
				Page:       res.CurrentPage,
				TotalPages: res.TotalPages,
			})
		},
	}
	versions.Flags().IntP(flagPage, "p", 1, "Page number for pagination")
	versions.Flags().IntP(flagLimit, "l", listing.DefaultPageSize, "Page size")

	cmd.AddCommand(
		list,
		newGetCmd(configs, configColumns),
		create,
		update,
		newDeleteCmd(configs),
		newRestoreCmd(configs, configColumns),
		versions,
	)
	return cmd
}

// configBody returns the body given by --body or read from --body-file, or
// nil when neither is set
func configBody(cmd *cobra.Command) (*string, error) {
	body := changedString(cmd, flagBody)
	path := changedString(cmd, flagBodyFile)
	switch {
	case body != nil && path != nil:
		return nil, fmt.Errorf("--%s and --%s are mutually exclusive", flagBody, flagBodyFile)
	case path != nil:
		data, err := os.ReadFile(*path)
		if err != nil {
			return nil, fmt.Errorf("error reading config body: %w", err)
		}
		s := string(data)
		return &s, nil
	default:
		return body, nil
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagName, "n", "", "Config name")
	cmd.Flags().String(flagClientID, "", "Client the config belongs to")
	cmd.Flags().String(flagProjectID, "", "Project of the client")
	cmd.Flags().String(flagBody, "", "JSON body")
	cmd.Flags().String(flagBodyFile, "", "Read the JSON body from a file")
}
