package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/tokendeploy/internal/cli/render"
	appconfig "github.com/trebuchet-org/tokendeploy/internal/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the default namespace and network",
		Long: `Show or change the defaults stored in .tokendeploy/config.local.json.

The namespace picks which accounts from deploy.toml fill the named roles
(deployer, owner, ...). The network must be one of the [networks.*]
sections of deploy.toml. Both are overridden by --namespace and --network.

Without a subcommand the current defaults and the declared networks are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			result, err := app.ShowConfig.Run(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderConfig(result)
		},
	}

	cmd.AddCommand(newConfigSetCmd(), newConfigRemoveCmd())
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set the default namespace or network",
		Long: `Set a default in .tokendeploy/config.local.json.
Keys: namespace (ns), network

Network values are checked against deploy.toml. Run without a value
to list the networks it declares.

Examples:
  tokendeploy config set network
  tokendeploy config set network sepolia
  tokendeploy config set ns production`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeConfigSet,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			renderer := render.NewConfigRenderer(cmd.OutOrStdout())

			if len(args) == 1 {
				key, _ := config.NormalizeConfigKey(args[0])
				if key != config.ConfigKeyNetwork {
					return fmt.Errorf("missing value for %s", args[0])
				}
				current, err := app.ShowConfig.Run(cmd.Context())
				if err != nil {
					return err
				}
				return renderer.RenderNetworkChoices(current.Config.Network, current.Networks)
			}

			result, err := app.SetConfig.Run(cmd.Context(), usecase.SetConfigParams{Key: args[0], Value: args[1]})
			if err != nil {
				return err
			}
			return renderer.RenderSet(result)
		},
	}
}

func newConfigRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Reset the default namespace or clear the default network",
		Long: `Remove a default from .tokendeploy/config.local.json.
The namespace falls back to 'default'; without a network every
network-bound command needs --network.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigRemove,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			result, err := app.RemoveConfig.Run(cmd.Context(), usecase.RemoveConfigParams{Key: args[0]})
			if err != nil {
				return err
			}
			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderRemove(result)
		},
	}
}

// completeConfigSet completes keys, then network names from deploy.toml
func completeConfigSet(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return configKeyNames(), cobra.ShellCompDirectiveNoFileComp
	case 1:
		if key, _ := config.NormalizeConfigKey(args[0]); key == config.ConfigKeyNetwork {
			return declaredNetworks(), cobra.ShellCompDirectiveNoFileComp
		}
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func completeConfigRemove(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return configKeyNames(), cobra.ShellCompDirectiveNoFileComp
}

func configKeyNames() []string {
	return lo.Map(config.ValidConfigKeys(), func(k config.ConfigKey, _ int) string { return string(k) })
}

// declaredNetworks reads deploy.toml directly; completion runs outside the
// normal command setup
func declaredNetworks() []string {
	root, err := appconfig.FindProjectRoot()
	if err != nil {
		return nil
	}
	project, err := appconfig.LoadProjectConfig(root)
	if err != nil {
		return nil
	}
	return appconfig.NetworkNames(project)
}
