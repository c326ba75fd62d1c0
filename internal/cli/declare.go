package cli

import (
	"github.com/spf13/cobra"
	"github.com/starknet-mobile/starkdeploy/internal/cli/render"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// NewDeclareCmd creates the declare command
func NewDeclareCmd() *cobra.Command {
	var build bool

	cmd := &cobra.Command{
		Use:   "declare [contract]",
		Short: "Declare a contract class on the network",
		Long: `Declare the Sierra and CASM classes of a compiled contract. The class hash is
computed locally first and the declaration is skipped when the network
already knows it.

The signing account comes from STARKNET_ACCOUNT_ADDRESS / STARKNET_PRIVATE_KEY
or from [tool.starkdeploy.accounts] in Scarb.toml.`,
		Example: `  starkdeploy declare --network sepolia
  starkdeploy declare Counter --build`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeclareContract.Run(cmd.Context(), usecase.DeclareContractParams{
				Contract:    contractArg(args),
				Build:       build,
				BuildOutput: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout(), app.Config.Format)
			return renderer.RenderDeclare(result)
		},
	}

	cmd.Flags().BoolVar(&build, "build", false, "Run scarb build first")

	return cmd
}
