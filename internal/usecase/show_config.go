package usecase

import (
	"context"

	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Exists     bool
	// Effective values after flags, env and Scarb.toml are applied
	Network  string
	Account  string
	Contract string
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	runtime *config.RuntimeConfig
	store   LocalConfigRepository
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(runtime *config.RuntimeConfig, store LocalConfigRepository) *ShowConfig {
	return &ShowConfig{
		runtime: runtime,
		store:   store,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	exists := uc.store.Exists()

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ShowConfigResult{
		Config:     cfg,
		ConfigPath: uc.store.GetPath(),
		Exists:     exists,
		Contract:   uc.runtime.Contract,
	}
	if uc.runtime.Network != nil {
		result.Network = uc.runtime.Network.Name
	}
	if uc.runtime.Account != nil {
		result.Account = uc.runtime.Account.Address
	}
	return result, nil
}
