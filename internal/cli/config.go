package cli

import (
	"github.com/spf13/cobra"
	"github.com/starknet-mobile/starkdeploy/internal/cli/render"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage starkdeploy local config",
		Long: `Manage starkdeploy local config stored in .starkdeploy/config.local.json

The config defines default values for network, account and contract
that are used when these flags are not explicitly provided. Flags and
environment variables still take precedence.

Available subcommands:
  config           Show current config
  config set       Set a config value
  config remove    Remove a config value

When run without subcommands, displays the current config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default action is to show config
			return showConfig(cmd)
		},
	}

	// Add subcommands
	cmd.AddCommand(NewConfigSetCmd())
	cmd.AddCommand(NewConfigRemoveCmd())

	return cmd
}

// NewConfigSetCmd creates the config set subcommand
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: `Set a config value in .starkdeploy/config.local.json.
Available keys: network (net), account, contract

Examples:
  starkdeploy config set network sepolia
  starkdeploy config set contract Counter`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.SetConfig.Run(cmd.Context(), usecase.SetConfigParams{
				Key:   args[0],
				Value: args[1],
			})
			if err != nil {
				return err
			}

			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderSet(result)
		},
	}
}

// NewConfigRemoveCmd creates the config remove subcommand
func NewConfigRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a config value",
		Long: `Remove a config value from .starkdeploy/config.local.json.

Examples:
  starkdeploy config remove network
  starkdeploy config remove account`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.RemoveConfig.Run(cmd.Context(), usecase.RemoveConfigParams{
				Key: args[0],
			})
			if err != nil {
				return err
			}

			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderRemove(result)
		},
	}
}

// showConfig displays the current configuration
func showConfig(cmd *cobra.Command) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ShowConfig.Run(cmd.Context())
	if err != nil {
		return err
	}

	return render.NewConfigRenderer(cmd.OutOrStdout()).RenderConfig(result)
}
