package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/starknet-mobile/starkdeploy/internal/adapters/progress"
	"github.com/starknet-mobile/starkdeploy/internal/app"
	"github.com/starknet-mobile/starkdeploy/internal/cli/render"
	"github.com/starknet-mobile/starkdeploy/internal/config"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// standalone commands run without a Scarb project
var standalone = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"selector":   true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "starkdeploy",
		Short: "Declare and deploy Cairo contracts to Starknet",
		Long: `starkdeploy builds, declares and deploys the Cairo contracts of a Scarb project
to Starknet, and extracts the metadata a client app needs to talk to them:
ABI, entry point selectors and the Sierra class hash.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if standalone[cmd.Name()] {
				return nil
			}

			// Find project root
			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			// Set up viper with every flag of the command bound
			v := config.SetupViper(projectRoot, cmd)

			// Initialize app with DI
			appInstance, err := app.InitApp(v, newProgressSink(v))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				// Store cancel func to be called on command completion
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (mainnet, sepolia, devnet, a configured name or an RPC URL)")
	rootCmd.PersistentFlags().StringP("account", "a", "", "Account from [tool.starkdeploy.accounts] to sign with")
	rootCmd.PersistentFlags().String("out-dir", "", "Directory for result files (defaults to the project root)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Deadline for the whole command (default 5m)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "contract",
		Title: "Contract Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "deployment",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Contract commands
	for _, cmd := range []*cobra.Command{
		NewBuildCmd(),
		NewExtractCmd(),
		NewClassHashCmd(),
		NewSelectorCmd(),
	} {
		cmd.GroupID = "contract"
		rootCmd.AddCommand(cmd)
	}

	// Deployment commands
	for _, cmd := range []*cobra.Command{
		NewDeclareCmd(),
		NewDeployCmd(),
		NewListCmd(),
		NewShowCmd(),
	} {
		cmd.GroupID = "deployment"
		rootCmd.AddCommand(cmd)
	}

	// Management commands
	for _, cmd := range []*cobra.Command{
		NewNetworksCmd(),
		NewPruneCmd(),
		NewConfigCmd(),
	} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// newProgressSink shows a spinner for interactive text output only
func newProgressSink(v *viper.Viper) usecase.ProgressSink {
	if v.GetBool("non_interactive") || render.IsStructured(v.GetString("format")) {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerProgressReporter()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// contractArg returns the optional [contract] positional argument
func contractArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
