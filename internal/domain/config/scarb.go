package config

// ScarbConfig represents the parts of Scarb.toml the deployer reads
type ScarbConfig struct {
	Package ScarbPackage                        `toml:"package"`
	Target  map[string][]StarknetContractTarget `toml:"target"`
	Tool    ScarbTool                           `toml:"tool"`
}

// ScarbPackage is the [package] section
type ScarbPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// StarknetContractTarget is a [[target.starknet-contract]] section
type StarknetContractTarget struct {
	Sierra *bool `toml:"sierra,omitempty"`
	Casm   bool  `toml:"casm,omitempty"`
}

// ScarbTool is the [tool] section
type ScarbTool struct {
	StarkDeploy *StarkDeployConfig `toml:"starkdeploy"`
}

// StarkDeployConfig is the [tool.starkdeploy] section
type StarkDeployConfig struct {
	Contract string                   `toml:"contract,omitempty"`
	Network  string                   `toml:"network,omitempty"`
	Account  string                   `toml:"account,omitempty"`
	Networks map[string]string        `toml:"networks,omitempty"` // name -> RPC URL, ${VAR} expanded
	Accounts map[string]AccountConfig `toml:"accounts,omitempty"`
}

// AccountConfig is a [tool.starkdeploy.accounts.<name>] section
type AccountConfig struct {
	Address    string `toml:"address,omitempty"`
	PrivateKey string `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
}

// CasmEnabled reports whether the starknet-contract target emits casm classes
func (s *ScarbConfig) CasmEnabled() bool {
	if s == nil {
		return false
	}
	for _, t := range s.Target["starknet-contract"] {
		if t.Casm {
			return true
		}
	}
	return false
}

// DeployConfig returns the [tool.starkdeploy] section, never nil
func (s *ScarbConfig) DeployConfig() *StarkDeployConfig {
	if s == nil || s.Tool.StarkDeploy == nil {
		return &StarkDeployConfig{}
	}
	return s.Tool.StarkDeploy
}
