package cli

import (
	"github.com/spf13/cobra"
	"github.com/starknet-mobile/starkdeploy/internal/cli/render"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile the project with scarb build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := app.BuildProject.Run(cmd.Context(), usecase.BuildProjectParams{Output: cmd.OutOrStdout()}); err != nil {
				return err
			}

			cmd.Println(render.FormatSuccess("Build finished"))
			return nil
		},
	}
}
