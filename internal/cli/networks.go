package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/tokendeploy/internal/cli/render"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List networks from deploy.toml",
		Long: `List all networks configured in the [networks] section of deploy.toml.

With --check each node is asked for its chain ID.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Check: check})
			if err != nil {
				return err
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Query each node for its chain ID")

	return cmd
}
