//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/starknet-mobile/starkdeploy/internal/adapters"
	"github.com/starknet-mobile/starkdeploy/internal/config"
	"github.com/starknet-mobile/starkdeploy/internal/logging"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.ProviderSet,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewResolveContract,
		usecase.NewExtractContract,
		usecase.NewComputeClassHash,
		usecase.NewComputeSelectors,
		usecase.NewBuildProject,
		usecase.NewDeclareContract,
		usecase.NewDeployContract,
		usecase.NewListNetworks,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewPruneRegistry,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
