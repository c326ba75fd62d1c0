package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string
	OutDir      string // where result JSON files are written

	// Context settings
	Contract string   // default contract name, e.g. "Counter"
	Network  *Network // nil if not specified
	Account  *Account // nil if no credentials are configured

	// Execution settings
	Debug          bool
	NonInteractive bool
	Format         string // "text", "json" or "yaml"
	Timeout        time.Duration
	PollInterval   time.Duration
	FeeMultiplier  float64

	// Resolved configurations
	Scarb *ScarbConfig
}

// Network represents a Starknet network
type Network struct {
	Name        string `json:"name" yaml:"name"`
	RPCURL      string `json:"rpcUrl" yaml:"rpc_url"`
	ChainID     string `json:"chainId,omitempty" yaml:"chain_id,omitempty"` // e.g. "SN_SEPOLIA"
	ExplorerURL string `json:"explorerUrl,omitempty" yaml:"explorer_url,omitempty"`
}

// Account represents the signing account used for declare/deploy
type Account struct {
	Name       string
	Address    string
	PrivateKey string //nolint:gosec // resolved from env, never persisted
}
