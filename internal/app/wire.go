//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/tokendeploy/internal/adapters"
	"github.com/trebuchet-org/tokendeploy/internal/config"
	"github.com/trebuchet-org/tokendeploy/internal/logging"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewRunDeployTasks,
		usecase.NewListTasks,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewRemoveDeployment,
		usecase.NewListNetworks,
		usecase.NewTokenOperations,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
