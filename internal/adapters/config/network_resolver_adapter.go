package config

import (
	"context"

	"github.com/starknet-mobile/starkdeploy/internal/config"
	domainconfig "github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// NetworkResolverAdapter adapts the config.NetworkResolver to the usecase.NetworkResolver interface
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(resolver *config.NetworkResolver) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: resolver,
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.GetNetworks()
}

// ResolveNetwork resolves a network name and queries its chain id
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	network, err := a.resolver.Resolve(networkName)
	if err != nil {
		return nil, err
	}

	if network.ChainID == "" {
		chainID, err := a.resolver.FetchChainID(ctx, network)
		if err != nil {
			return nil, err
		}
		network.ChainID = chainID
	}
	if network.ExplorerURL == "" {
		network.ExplorerURL = config.ExplorerURL(network.ChainID)
	}

	return network, nil
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
