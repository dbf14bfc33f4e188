package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hasnain-nisan/admindash/config"
	"github.com/hasnain-nisan/admindash/internal/listings"
	"github.com/hasnain-nisan/admindash/internal/logger"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/client"
	"github.com/hasnain-nisan/admindash/pkg/api/v1/routes"
)

// flag names
const (
	flagServerAddress = "server-address"
	flagToken         = "token"
	flagConfig        = "config"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// perms gates mutating commands. It is read from the token without
	// verification; the server has the final word.
	perms = permissions.AllowAll()
	// listOpts configures the list controllers
	listOpts listings.Options

	serverAddress string
	token         string
	configPath    string
)

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", routes.DefaultBaseURL,
		"Address of the API server (env: "+config.EnvServerAddress+")")
	RootCmd.PersistentFlags().StringVarP(&token, flagToken, "t", "", "Bearer token (env: "+config.EnvAPIToken+")")
	RootCmd.PersistentFlags().StringVarP(&configPath, flagConfig, "c", "", "Path to a YAML config file (env: "+config.EnvConfigFile+")")
	addOutputFlag(RootCmd)

	RootCmd.AddCommand(
		newUsersCmd(),
		newClientsCmd(),
		newProjectsCmd(),
		newStakeholdersCmd(),
		newInterviewsCmd(),
		newConfigsCmd(),
	)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:          "admindash",
	Short:        "admindash CLI - manage users, clients, projects, stakeholders, interviews and configs",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		format := logger.Format(cfg.Log.Format)
		logger.InitializeAndConfigure(cfg.Log.Level, format)
		logger.SetOutput(cmd.ErrOrStderr())

		// Flag > env/config file > default
		if !cmd.Flags().Changed(flagServerAddress) && cfg.Client.ServerAddress != "" {
			serverAddress = cfg.Client.ServerAddress
		}
		if !cmd.Flags().Changed(flagToken) {
			token = cfg.Auth.Token
		}
		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}

		if perms, err = resolvePermissions(token); err != nil {
			return err
		}
		listOpts = listings.Options{
			PageSize:     cfg.Listing.PageSize,
			Debounce:     cfg.Listing.SearchDebounce,
			FetchTimeout: cfg.Client.Timeout,
			Logger:       logger.Zap(format),
		}

		apiClient, err = client.NewClient(&client.Options{
			BaseURL:   serverAddress,
			Timeout:   cfg.Client.Timeout,
			Token:     token,
			RateLimit: cfg.Client.RateLimit,
		})
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// resolvePermissions reads the permission set carried by token. Without a
// token nothing is gated locally.
func resolvePermissions(token string) (permissions.PermissionSet, error) {
	if token == "" {
		return permissions.AllowAll(), nil
	}
	p, err := permissions.ResolveUnverified(token)
	if err != nil {
		return permissions.PermissionSet{}, fmt.Errorf("invalid token: %w", err)
	}
	return p, nil
}
