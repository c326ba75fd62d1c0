package adapters

import (
	"github.com/google/wire"
	"github.com/starknet-mobile/starkdeploy/internal/adapters/blockchain"
	internalconfig "github.com/starknet-mobile/starkdeploy/internal/adapters/config"
	"github.com/starknet-mobile/starkdeploy/internal/adapters/fs"
	"github.com/starknet-mobile/starkdeploy/internal/adapters/interactive"
	"github.com/starknet-mobile/starkdeploy/internal/adapters/repository/contracts"
	"github.com/starknet-mobile/starkdeploy/internal/adapters/repository/deployments"
	"github.com/starknet-mobile/starkdeploy/internal/adapters/scarb"
	"github.com/starknet-mobile/starkdeploy/internal/config"
	domainconfig "github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// ProvideNetworkResolver provides the network resolver for the project
func ProvideNetworkResolver(cfg *domainconfig.RuntimeConfig) *config.NetworkResolver {
	return config.NewNetworkResolver(cfg.DataDir, cfg.Scarb)
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	deployments.NewFileRepositoryFromConfig,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),

	fs.NewResultWriterAdapter,
	wire.Bind(new(usecase.ResultWriter), new(*fs.ResultWriterAdapter)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigRepository), new(*fs.LocalConfigStoreAdapter)),
)

// ContractsSet provides compiled contract discovery
var ContractsSet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ContractRepository), new(*contracts.Repository)),
)

// ScarbSet provides scarb-based implementations
var ScarbSet = wire.NewSet(
	scarb.NewBuilderAdapter,
	wire.Bind(new(usecase.ProjectBuilder), new(*scarb.BuilderAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ContractSelector), new(*interactive.SelectorAdapter)),

	interactive.NewMultiSelectAdapter,
	wire.Bind(new(usecase.DeploymentMultiSelector), new(*interactive.MultiSelectAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	ProvideNetworkResolver,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// BlockchainSet provides starknet node implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewGatewayAdapter,
	wire.Bind(new(usecase.StarknetGateway), new(*blockchain.GatewayAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ContractsSet,
	ScarbSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
)
