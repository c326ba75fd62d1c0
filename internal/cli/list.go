package cli

import (
	"github.com/spf13/cobra"
	"github.com/starknet-mobile/starkdeploy/internal/cli/render"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var contractName string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List deployments from the registry",
		Long: `List the deployments recorded in .starkdeploy/deployments.json.

Only the selected network is listed when --network is given.`,
		Example: `  # List all deployments
  starkdeploy list

  # List Counter deployments on sepolia
  starkdeploy list --network sepolia --contract Counter`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{
				Network:      explicitNetwork(cmd),
				ContractName: contractName,
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentsRenderer(cmd.OutOrStdout(), app.Config.Format)
			return renderer.RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")

	return cmd
}

// explicitNetwork returns the --network flag only when it was given
func explicitNetwork(cmd *cobra.Command) string {
	if f := cmd.Flag("network"); f != nil && f.Changed {
		return f.Value.String()
	}
	return ""
}
