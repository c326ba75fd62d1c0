package cli

import (
	"github.com/spf13/cobra"
	"github.com/starknet-mobile/starkdeploy/internal/cli/render"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// NewExtractCmd creates the extract command
func NewExtractCmd() *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "extract [contract]",
		Short: "Extract ABI, selectors and entry points from a compiled contract",
		Long: `Extract the ABI, function definitions and entry point selectors of a compiled
contract class from target/dev.

The record is written to extracted_contract_info.json and the ABI to
<Contract>_ABI.json in the output directory.`,
		Example: `  # Extract the default contract
  starkdeploy extract

  # Extract a named contract and print the record as JSON
  starkdeploy extract Counter --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ExtractContract.Run(cmd.Context(), usecase.ExtractContractParams{
				Contract: contractArg(args),
				NoSave:   noSave,
			})
			if err != nil {
				return err
			}

			renderer := render.NewContractRenderer(cmd.OutOrStdout(), app.Config.Format)
			return renderer.RenderExtract(result)
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "Print the record without writing files")

	return cmd
}
