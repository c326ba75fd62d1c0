package cli

import (
	"github.com/spf13/cobra"
	"github.com/starknet-mobile/starkdeploy/internal/cli/render"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// NewSelectorCmd creates the selector command. It needs no project.
func NewSelectorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selector <name>...",
		Short: "Compute entry point selectors of function names",
		Example: `  starkdeploy selector increase_counter get_counter
  starkdeploy selector constructor --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := usecase.NewComputeSelectors().Run(cmd.Context(), usecase.ComputeSelectorsParams{Names: args})
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			return render.NewContractRenderer(cmd.OutOrStdout(), format).RenderSelectors(result)
		},
	}
}
