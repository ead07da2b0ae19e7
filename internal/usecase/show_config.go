package usecase

import (
	"context"

	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Exists     bool
	Networks   []string // networks declared in deploy.toml, sorted
}

// ShowConfig is a use case for showing the local configuration
type ShowConfig struct {
	store    LocalConfigStore
	networks NetworkResolver
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(store LocalConfigStore, networks NetworkResolver) *ShowConfig {
	return &ShowConfig{store: store, networks: networks}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &ShowConfigResult{
		Config:     local,
		ConfigPath: uc.store.Path(),
		Exists:     uc.store.Exists(),
		Networks:   uc.networks.NetworkNames(),
	}, nil
}
