package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
)

// ScarbManifest is the project manifest file name
const ScarbManifest = "Scarb.toml"

// LoadEnvFiles loads .env then .env.local from the project root.
// Variables already present in the environment are not overwritten.
func LoadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadScarbConfig parses Scarb.toml and expands ${VAR} references in the
// [tool.starkdeploy] section
func LoadScarbConfig(projectRoot string) (*config.ScarbConfig, error) {
	manifestPath := filepath.Join(projectRoot, ScarbManifest)

	var cfg config.ScarbConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ScarbManifest, err)
	}

	if deploy := cfg.Tool.StarkDeploy; deploy != nil {
		deploy.Contract = os.ExpandEnv(deploy.Contract)
		deploy.Network = os.ExpandEnv(deploy.Network)
		deploy.Account = os.ExpandEnv(deploy.Account)

		for name, url := range deploy.Networks {
			deploy.Networks[name] = os.ExpandEnv(url)
		}
		for name, account := range deploy.Accounts {
			account.Address = os.ExpandEnv(account.Address)
			account.PrivateKey = os.ExpandEnv(account.PrivateKey)
			deploy.Accounts[name] = account
		}
	}

	return &cfg, nil
}
