package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/tokendeploy/internal/cli/render"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		tags       []string
		selectMode bool
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Run deployment tasks",
		Long: `Run the registered deployment tasks on the selected network.

Tasks are selected by tag; without --tags every task runs. Dependencies of
selected tasks run first. Contracts already recorded in the ledger with the
same bytecode and constructor arguments are reused instead of redeployed.`,
		Example: `  # Deploy everything to the local node
  tokendeploy deploy --network localhost

  # Deploy only the ZHM token
  tokendeploy deploy -n sepolia --tags ERC20ZHM202330552162

  # Pick tasks interactively
  tokendeploy deploy -n localhost --select`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := requireNetwork(app); err != nil {
				return err
			}

			result, err := app.RunDeployTasks.Run(cmd.Context(), usecase.RunDeployTasksParams{
				Tags:   tags,
				Select: selectMode,
				Yes:    yes,
			})
			if result != nil {
				if renderErr := render.NewDeployRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result); renderErr != nil && err == nil {
					return renderErr
				}
			}
			return err
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "Only run tasks with these tags (comma separated)")
	cmd.Flags().BoolVar(&selectMode, "select", false, "Choose the tasks to run interactively")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation for live networks")

	return cmd
}
