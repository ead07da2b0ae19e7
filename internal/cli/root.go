package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/tokendeploy/internal/app"
	"github.com/trebuchet-org/tokendeploy/internal/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// commands that run without a project
var projectless = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tokendeploy",
		Short: "Tag-selected deployment tasks for EVM contracts",
		Long: `tokendeploy runs registered deployment tasks against the networks declared
in deploy.toml, records every deployment in a per-network ledger and reuses
matching deployments on later runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if projectless[cmd.Name()] || (cmd.Parent() != nil && projectless[cmd.Parent().Name()]) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a, err := getApp(cmd); err == nil {
				a.Close()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringP("namespace", "s", "", "Namespace selecting the named accounts (defaults to 'default')")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from deploy.toml (e.g. localhost, sepolia)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Timeout for deployments and transactions (default 10m)")

	rootCmd.AddGroup(&cobra.Group{ID: "main", Title: "Main Commands"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands"})

	for _, cmd := range []*cobra.Command{NewDeployCmd(), NewTasksCmd(), NewDeploymentsCmd(), NewTokenCmd()} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{NewNetworksCmd(), NewConfigCmd()} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	if cmd.Context() == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	appInstance, ok := cmd.Context().Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return appInstance, nil
}

// requireNetwork returns the active network or an error naming the flag
func requireNetwork(a *app.App) error {
	if a.Config.Network == nil {
		return fmt.Errorf("%w: pass --network or run 'tokendeploy config set network <name>'", domain.ErrNoNetwork)
	}
	return nil
}
