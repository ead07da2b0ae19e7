package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Key        config.ConfigKey
	Value      string
}

// SetConfig is a use case for setting local configuration values
type SetConfig struct {
	store    LocalConfigStore
	networks NetworkResolver
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigStore, networks NetworkResolver) *SetConfig {
	return &SetConfig{store: store, networks: networks}
}

// Run executes the set config use case. Network values must name a
// network from deploy.toml.
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := parseConfigKey(params.Key)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Value) == "" {
		return nil, fmt.Errorf("value for %s cannot be empty", key)
	}

	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch key {
	case config.ConfigKeyNamespace:
		local.Namespace = params.Value
	case config.ConfigKeyNetwork:
		network, err := uc.networks.ResolveNetwork(params.Value)
		if err != nil {
			return nil, err
		}
		local.Network = network.Name
	}

	if err := uc.store.Save(ctx, local); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		Config:     local,
		ConfigPath: uc.store.Path(),
		Key:        key,
		Value:      params.Value,
	}, nil
}

func parseConfigKey(raw string) (config.ConfigKey, error) {
	key, ok := config.NormalizeConfigKey(strings.ToLower(raw))
	if !ok {
		valid := []string{}
		for _, k := range config.ValidConfigKeys() {
			if k == config.ConfigKeyNamespace {
				valid = append(valid, string(k)+" (ns)")
			} else {
				valid = append(valid, string(k))
			}
		}
		return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", raw, strings.Join(valid, ", "))
	}
	return key, nil
}
