package config

import (
	"fmt"
	"os"

	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
)

// Environment variables holding the signing account
const (
	EnvAccountAddress = "STARKNET_ACCOUNT_ADDRESS"
	EnvPrivateKey     = "STARKNET_PRIVATE_KEY" //nolint:gosec // env var name
	EnvNetwork        = "STARKNET_NETWORK"
	EnvRPCURL         = "STARKNET_RPC_URL"
)

// DefaultAccountName names the account assembled from environment variables only
const DefaultAccountName = "default"

// ResolveAccount builds the signing account from [tool.starkdeploy.accounts.<name>],
// with STARKNET_ACCOUNT_ADDRESS and STARKNET_PRIVATE_KEY taking precedence.
// Returns nil when neither source provides anything.
func ResolveAccount(scarb *config.ScarbConfig, name string) (*config.Account, error) {
	deploy := scarb.DeployConfig()

	account := &config.Account{Name: name}
	if name != "" {
		configured, ok := deploy.Accounts[name]
		if !ok && os.Getenv(EnvAccountAddress) == "" && os.Getenv(EnvPrivateKey) == "" {
			return nil, fmt.Errorf("account '%s' not found in [tool.starkdeploy.accounts]", name)
		}
		account.Address = configured.Address
		account.PrivateKey = configured.PrivateKey
	} else {
		account.Name = DefaultAccountName
	}

	if address := os.Getenv(EnvAccountAddress); address != "" {
		account.Address = address
	}
	if key := os.Getenv(EnvPrivateKey); key != "" {
		account.PrivateKey = key
	}

	if account.Address == "" && account.PrivateKey == "" {
		return nil, nil
	}
	return account, nil
}
