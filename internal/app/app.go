package app

import (
	"log/slog"

	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Contract artifacts
	ExtractContract  *usecase.ExtractContract
	ComputeClassHash *usecase.ComputeClassHash
	ComputeSelectors *usecase.ComputeSelectors
	BuildProject     *usecase.BuildProject

	// Network operations
	DeclareContract *usecase.DeclareContract
	DeployContract  *usecase.DeployContract
	ListNetworks    *usecase.ListNetworks

	// Registry
	ListDeployments *usecase.ListDeployments
	ShowDeployment  *usecase.ShowDeployment
	PruneRegistry   *usecase.PruneRegistry

	// Local config
	ShowConfig   *usecase.ShowConfig
	SetConfig    *usecase.SetConfig
	RemoveConfig *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	extractContract *usecase.ExtractContract,
	computeClassHash *usecase.ComputeClassHash,
	computeSelectors *usecase.ComputeSelectors,
	buildProject *usecase.BuildProject,
	declareContract *usecase.DeclareContract,
	deployContract *usecase.DeployContract,
	listNetworks *usecase.ListNetworks,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	pruneRegistry *usecase.PruneRegistry,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) (*App, error) {
	return &App{
		Config:           cfg,
		Log:              log,
		ExtractContract:  extractContract,
		ComputeClassHash: computeClassHash,
		ComputeSelectors: computeSelectors,
		BuildProject:     buildProject,
		DeclareContract:  declareContract,
		DeployContract:   deployContract,
		ListNetworks:     listNetworks,
		ListDeployments:  listDeployments,
		ShowDeployment:   showDeployment,
		PruneRegistry:    pruneRegistry,
		ShowConfig:       showConfig,
		SetConfig:        setConfig,
		RemoveConfig:     removeConfig,
	}, nil
}
