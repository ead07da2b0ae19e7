package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/tokendeploy/internal/cli/render"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// NewTasksCmd creates the tasks command
func NewTasksCmd() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List registered deployment tasks and their tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListTasks.Run(cmd.Context(), usecase.ListTasksParams{Tags: tags})
			if err != nil {
				return err
			}
			return render.NewTasksRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "Show the tasks these tags would run, in order")

	return cmd
}
