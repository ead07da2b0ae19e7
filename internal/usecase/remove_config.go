package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
)

// RemoveConfigParams contains parameters for removing configuration
type RemoveConfigParams struct {
	Key string
}

// RemoveConfigResult contains the result of removing configuration
type RemoveConfigResult struct {
	Config       *config.LocalConfig
	ConfigPath   string
	Key          config.ConfigKey
	RemovedValue string
}

// RemoveConfig is a use case for resetting local configuration values
type RemoveConfig struct {
	store LocalConfigStore
}

// NewRemoveConfig creates a new RemoveConfig use case
func NewRemoveConfig(store LocalConfigStore) *RemoveConfig {
	return &RemoveConfig{store: store}
}

// Run executes the remove config use case. The namespace falls back to
// "default"; the network is cleared.
func (uc *RemoveConfig) Run(ctx context.Context, params RemoveConfigParams) (*RemoveConfigResult, error) {
	if !uc.store.Exists() {
		return nil, fmt.Errorf("no config file found at %s", uc.store.Path())
	}

	key, err := parseConfigKey(params.Key)
	if err != nil {
		return nil, err
	}

	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var removed string
	switch key {
	case config.ConfigKeyNamespace:
		removed = local.Namespace
		local.Namespace = config.DefaultNamespace
	case config.ConfigKeyNetwork:
		removed = local.Network
		local.Network = ""
	}

	if err := uc.store.Save(ctx, local); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &RemoveConfigResult{
		Config:       local,
		ConfigPath:   uc.store.Path(),
		Key:          key,
		RemovedValue: removed,
	}, nil
}
