package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/wire"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
)

// DataDirName is the per-project state directory
const DataDirName = ".starkdeploy"

// ProviderSet builds the runtime configuration from viper
var ProviderSet = wire.NewSet(Provider)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, err
		}
	}

	LoadEnvFiles(projectRoot)

	scarb, err := LoadScarbConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load scarb config: %w", err)
	}
	deploy := scarb.DeployConfig()

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		OutDir:         v.GetString("out_dir"),
		Contract:       firstNonEmpty(v.GetString("contract"), deploy.Contract),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Format:         strings.ToLower(v.GetString("format")),
		Timeout:        v.GetDuration("timeout"),
		PollInterval:   v.GetDuration("poll_interval"),
		FeeMultiplier:  v.GetFloat64("fee_multiplier"),
		Scarb:          scarb,
	}
	if cfg.OutDir != "" && !filepath.IsAbs(cfg.OutDir) {
		cfg.OutDir = filepath.Join(projectRoot, cfg.OutDir)
	}

	switch cfg.Format {
	case "", "text":
		cfg.Format = "text"
	case "json", "yaml":
	default:
		return nil, fmt.Errorf("unsupported output format '%s' (use text, json or yaml)", cfg.Format)
	}

	networkName := firstNonEmpty(v.GetString("network"), deploy.Network, DefaultNetwork)
	network, err := NewNetworkResolver(cfg.DataDir, scarb).Resolve(networkName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}
	cfg.Network = network

	account, err := ResolveAccount(scarb, firstNonEmpty(v.GetString("account"), deploy.Account))
	if err != nil {
		return nil, err
	}
	cfg.Account = account

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find Scarb.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findProjectRoot(dir)
}

func findProjectRoot(dir string) (string, error) {
	for {
		manifest := filepath.Join(dir, ScarbManifest)
		if _, err := os.Stat(manifest); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", domain.ErrNotInProject
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("STARKDEPLOY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	_ = v.BindEnv("network", "STARKDEPLOY_NETWORK", EnvNetwork)

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("poll_interval", "5s")
	v.SetDefault("fee_multiplier", 1.5)
	v.SetDefault("format", "text")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: Failed to read local config: %v\n", err)
		}
	}

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(flagKey(f.Name), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

// flagKey maps a flag name to its viper key (non-interactive -> non_interactive)
func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
