package cli

import (
	"github.com/spf13/cobra"
	"github.com/starknet-mobile/starkdeploy/internal/cli/render"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks",
		Long: `List the built-in networks (mainnet, sepolia, devnet), those configured in
[tool.starkdeploy.networks] and STARKNET_RPC_URL.

Each node is asked for its chain id; answers are cached in
.starkdeploy/cache/chain_ids.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), app.Config.Format)
			return renderer.RenderNetworksList(result)
		},
	}

	return cmd
}
