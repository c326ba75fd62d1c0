package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/starknet-mobile/starkdeploy/internal/cli/render"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// NewPruneCmd creates the prune command
func NewPruneCmd() *cobra.Command {
	var (
		all    bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove deployments from the registry",
		Long: `Remove recorded deployments from .starkdeploy/deployments.json.

Without --all, the records of the selected network are offered in a
checklist. With --all every record of the network is removed after a
confirmation (skipped with --non-interactive). On-chain contracts are
not touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.PruneRegistryParams{
				Network: explicitNetwork(cmd),
				All:     all,
				DryRun:  dryRun,
			}
			renderer := render.NewPruneRenderer(cmd.OutOrStdout())

			// The checklist is the confirmation for a selection
			if !all || dryRun {
				result, err := app.PruneRegistry.Run(cmd.Context(), params)
				if err != nil {
					return err
				}
				if err := renderer.RenderItemsToPrune(result.Items); err != nil {
					return err
				}
				if !dryRun && !result.Items.Empty() {
					fmt.Fprintf(cmd.OutOrStdout(), "✅ Successfully pruned %d deployment(s) from the registry.\n", len(result.Items.Deployments))
				}
				return nil
			}

			// First, collect items to prune (dry run)
			params.DryRun = true
			result, err := app.PruneRegistry.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			if err := renderer.RenderItemsToPrune(result.Items); err != nil {
				return err
			}
			if result.Items.Empty() {
				return nil
			}

			// Handle confirmation
			if !app.Config.NonInteractive {
				fmt.Fprint(cmd.OutOrStdout(), "⚠️  Are you sure you want to prune these deployments? This cannot be undone. [y/N]: ")
				var response string
				if _, err := fmt.Fscanln(cmd.InOrStdin(), &response); err != nil {
					// Treat error as "no" response
					fmt.Fprintln(cmd.OutOrStdout(), "❌ Prune cancelled.")
					return nil
				}

				if strings.ToLower(strings.TrimSpace(response)) != "y" {
					fmt.Fprintln(cmd.OutOrStdout(), "❌ Prune cancelled.")
					return nil
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "⚠️  Running in non-interactive mode. Proceeding with prune...")
			}

			// Now execute the actual prune
			params.DryRun = false
			result, err = app.PruneRegistry.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Successfully pruned %d deployment(s) from the registry.\n", len(result.Items.Deployments))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove every record of the network")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be removed")

	return cmd
}
