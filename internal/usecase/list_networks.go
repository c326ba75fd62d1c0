package usecase

import (
	"context"

	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct{}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Current  string
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name    string
	RPCURL  string
	ChainID string
	Error   error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		resolver: resolver,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{
			Name: name,
		}

		// Resolving queries the node for its chain id
		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
		} else {
			status.RPCURL = info.RPCURL
			status.ChainID = info.ChainID
		}

		networks = append(networks, status)
	}

	result := &ListNetworksResult{Networks: networks}
	if uc.config.Network != nil {
		result.Current = uc.config.Network.Name
	}
	return result, nil
}
