package cli

import (
	"github.com/spf13/cobra"
	"github.com/starknet-mobile/starkdeploy/internal/cli/render"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// NewClassHashCmd creates the class-hash command
func NewClassHashCmd() *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "class-hash [contract]",
		Short: "Compute the Sierra class hash of a compiled contract",
		Long: `Compute the class hash of a compiled contract class locally, the same hash
the network assigns on declaration. The result is written to class_hash.json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ComputeClassHash.Run(cmd.Context(), usecase.ComputeClassHashParams{
				Contract: contractArg(args),
				NoSave:   noSave,
			})
			if err != nil {
				return err
			}

			renderer := render.NewContractRenderer(cmd.OutOrStdout(), app.Config.Format)
			return renderer.RenderClassHash(result)
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not write class_hash.json")

	return cmd
}
