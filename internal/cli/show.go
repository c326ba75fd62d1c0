package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/starknet-mobile/starkdeploy/internal/cli/render"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <deployment>",
		Short: "Show detailed deployment information from the registry",
		Long: `Show detailed information about a recorded deployment.

You can specify deployments using:
- Full deployment ID: "sepolia/Counter/0x04a1..."
- Contract address: "0x04a1..."
- Contract name: "Counter"

A name matching several deployments is an error listing the candidates;
narrow it down with --network or use the address.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			deployment, err := app.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{
				Reference: args[0],
				Network:   explicitNetwork(cmd),
			})
			if err != nil {
				return fmt.Errorf("failed to resolve deployment: %w", err)
			}

			renderer := render.NewDeploymentRenderer(cmd.OutOrStdout(), app.Config.Format)
			return renderer.RenderDeployment(deployment)
		},
	}

	return cmd
}
