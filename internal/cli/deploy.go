package cli

import (
	"github.com/spf13/cobra"
	"github.com/starknet-mobile/starkdeploy/internal/cli/render"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		salt     string
		unique   bool
		calldata []string
		dryRun   bool
		build    bool
	)

	cmd := &cobra.Command{
		Use:   "deploy [contract]",
		Short: "Declare (if needed) and deploy a contract instance",
		Long: `Declare the contract class unless it is already known, then deploy an instance
through the Universal Deployer Contract.

The deployment is written to contract_deployment_info.json and recorded in
.starkdeploy/deployments.json.`,
		Example: `  # Deploy the default contract to sepolia
  starkdeploy deploy --network sepolia

  # Deploy with constructor arguments and a fixed salt
  starkdeploy deploy Counter --calldata 0x1,42 --salt 0x1234

  # Show the class hash and address without sending anything
  starkdeploy deploy --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployContract.Run(cmd.Context(), usecase.DeployContractParams{
				Contract:    contractArg(args),
				Salt:        salt,
				Unique:      unique,
				Calldata:    calldata,
				DryRun:      dryRun,
				Build:       build,
				BuildOutput: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout(), app.Config.Format)
			return renderer.RenderDeploy(result)
		},
	}

	cmd.Flags().StringVar(&salt, "salt", "", "Deployment salt (random when empty)")
	cmd.Flags().BoolVar(&unique, "unique", false, "Derive the address from the deployer account as well")
	cmd.Flags().StringSliceVar(&calldata, "calldata", nil, "Constructor calldata as felts (comma separated)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute class hash and address without sending transactions")
	cmd.Flags().BoolVar(&build, "build", false, "Run scarb build first")

	return cmd
}
