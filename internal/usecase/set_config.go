package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig is a use case for setting configuration values
type SetConfig struct {
	store LocalConfigRepository
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigRepository) *SetConfig {
	return &SetConfig{
		store: store,
	}
}

// Run executes the set config use case
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := parseConfigKey(params.Key)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Set(key, params.Value)

	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: cfg,
		ConfigPath:    uc.store.GetPath(),
		Key:           key,
		Value:         params.Value,
	}, nil
}

// parseConfigKey validates and normalizes a user supplied key
func parseConfigKey(raw string) (config.ConfigKey, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if !config.IsValidConfigKey(key) {
		validKeys := lo.Map(config.ValidConfigKeys(), func(k config.ConfigKey, _ int) string {
			if k == config.ConfigKeyNetwork {
				return string(k) + " (net)"
			}
			return string(k)
		})
		return "", fmt.Errorf("%w: %s\nAvailable keys: %s", domain.ErrInvalidConfigKey, raw, strings.Join(validKeys, ", "))
	}
	return config.NormalizeConfigKey(key), nil
}
