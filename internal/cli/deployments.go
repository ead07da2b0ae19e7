package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/tokendeploy/internal/cli/render"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// NewDeploymentsCmd creates the deployments command group
func NewDeploymentsCmd() *cobra.Command {
	var (
		format       string
		contractName string
	)

	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"ls"},
		Short:   "Inspect the deployment ledger of a network",
		Long: `Inspect the deployment ledger kept under deployments/<network>/.

Without a subcommand the ledger of the selected network is listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listDeployments(cmd, format, contractName)
		},
	}
	cmd.PersistentFlags().StringVarP(&format, "format", "f", render.FormatTable, "Output format (table, json, yaml)")
	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded deployments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listDeployments(cmd, format, contractName)
		},
	}
	list.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")

	show := &cobra.Command{
		Use:   "show <contract>",
		Short: "Show a recorded deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := requireNetwork(app); err != nil {
				return err
			}

			renderer, err := render.NewDeploymentsRenderer(cmd.OutOrStdout(), outputFormat(format, app.Config.JSON))
			if err != nil {
				return err
			}
			result, err := app.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{ContractName: args[0]})
			if err != nil {
				return err
			}
			return renderer.RenderDeployment(result)
		},
	}

	var force bool
	remove := &cobra.Command{
		Use:     "delete <contract>",
		Aliases: []string{"rm"},
		Short:   "Remove a deployment from the ledger (the contract stays on chain)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := requireNetwork(app); err != nil {
				return err
			}

			result, err := app.RemoveDeployment.Run(cmd.Context(), usecase.RemoveDeploymentParams{
				ContractName: args[0],
				Force:        force,
			})
			if err != nil {
				return err
			}
			renderer, err := render.NewDeploymentsRenderer(cmd.OutOrStdout(), render.FormatTable)
			if err != nil {
				return err
			}
			return renderer.RenderRemoved(result)
		},
	}
	remove.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	cmd.AddCommand(list, show, remove)
	return cmd
}

func listDeployments(cmd *cobra.Command, format, contractName string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}
	if err := requireNetwork(app); err != nil {
		return err
	}

	renderer, err := render.NewDeploymentsRenderer(cmd.OutOrStdout(), outputFormat(format, app.Config.JSON))
	if err != nil {
		return err
	}
	result, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{ContractName: contractName})
	if err != nil {
		return err
	}
	return renderer.Render(result)
}

// outputFormat lets the global --json flag override the table default
func outputFormat(format string, json bool) string {
	if json && (format == "" || format == render.FormatTable) {
		return render.FormatJSON
	}
	return format
}
