package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

func orNotSet(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

// RenderConfig renders the local config next to the effective values
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintf(r.out, "ℹ️  No .starkdeploy/config.local.json file found\n")
	} else {
		fmt.Fprintln(r.out, "📋 Local config:")
		for _, key := range config.ValidConfigKeys() {
			fmt.Fprintf(r.out, "  %-9s %s\n", Title(string(key))+":", orNotSet(result.Config.Get(key)))
		}
		fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "⚙️  Effective values:")
	fmt.Fprintf(r.out, "  %-9s %s\n", "Network:", orNotSet(result.Network))
	fmt.Fprintf(r.out, "  %-9s %s\n", "Account:", orNotSet(result.Account))
	fmt.Fprintf(r.out, "  %-9s %s\n", "Contract:", orNotSet(result.Contract))

	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintf(r.out, "✅ Set %s to: %s\n", result.Key, result.Value)
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyNetwork:
		fmt.Fprintf(r.out, "✅ Removed network from config (falls back to STARKNET_NETWORK or Scarb.toml)\n")
	default:
		fmt.Fprintf(r.out, "✅ Removed %s from config\n", result.Key)
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
