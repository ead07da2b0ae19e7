package config

import "github.com/samber/lo"

// LocalConfig holds per-checkout defaults stored outside deploy.toml
type LocalConfig struct {
	Namespace string `json:"namespace"`
	Network   string `json:"network,omitempty"`
}

// ConfigKey represents a local configuration key
type ConfigKey string

const (
	ConfigKeyNamespace ConfigKey = "namespace"
	ConfigKeyNetwork   ConfigKey = "network"
)

// DefaultNamespace is used when no namespace is configured
const DefaultNamespace = "default"

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{Namespace: DefaultNamespace}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{ConfigKeyNamespace, ConfigKeyNetwork}
}

// NormalizeConfigKey maps aliases to their key ("ns" -> "namespace").
// The second return value is false for unknown keys.
func NormalizeConfigKey(key string) (ConfigKey, bool) {
	if key == "ns" {
		return ConfigKeyNamespace, true
	}
	k := ConfigKey(key)
	return k, lo.Contains(ValidConfigKeys(), k)
}
