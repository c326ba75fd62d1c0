package config

// LocalConfig represents the local starkdeploy configuration
type LocalConfig struct {
	Network  string `json:"network,omitempty"`
	Account  string `json:"account,omitempty"`
	Contract string `json:"contract,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNetwork  ConfigKey = "network"
	ConfigKeyAccount  ConfigKey = "account"
	ConfigKeyContract ConfigKey = "contract"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyNetwork,
		ConfigKeyAccount,
		ConfigKeyContract,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	for _, validKey := range ValidConfigKeys() {
		if string(validKey) == key || (key == "net" && validKey == ConfigKeyNetwork) {
			return true
		}
	}
	return false
}

// NormalizeConfigKey normalizes a config key (e.g., "net" -> "network")
func NormalizeConfigKey(key string) ConfigKey {
	if key == "net" {
		return ConfigKeyNetwork
	}
	return ConfigKey(key)
}

// Get returns the value stored for a key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyNetwork:
		return c.Network
	case ConfigKeyAccount:
		return c.Account
	case ConfigKeyContract:
		return c.Contract
	default:
		return ""
	}
}

// Set stores a value for a key, returning false for unknown keys
func (c *LocalConfig) Set(key ConfigKey, value string) bool {
	switch key {
	case ConfigKeyNetwork:
		c.Network = value
	case ConfigKeyAccount:
		c.Account = value
	case ConfigKeyContract:
		c.Contract = value
	default:
		return false
	}
	return true
}
