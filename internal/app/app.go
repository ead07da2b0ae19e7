package app

import (
	"log/slog"

	"github.com/trebuchet-org/tokendeploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	RunDeployTasks   *usecase.RunDeployTasks
	ListTasks        *usecase.ListTasks
	ListDeployments  *usecase.ListDeployments
	ShowDeployment   *usecase.ShowDeployment
	RemoveDeployment *usecase.RemoveDeployment
	ListNetworks     *usecase.ListNetworks
	TokenOperations  *usecase.TokenOperations
	ShowConfig       *usecase.ShowConfig
	SetConfig        *usecase.SetConfig
	RemoveConfig     *usecase.RemoveConfig

	// Adapters with resources to release
	dialer *blockchain.RPCDialer
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	runDeployTasks *usecase.RunDeployTasks,
	listTasks *usecase.ListTasks,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	removeDeployment *usecase.RemoveDeployment,
	listNetworks *usecase.ListNetworks,
	tokenOperations *usecase.TokenOperations,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
	dialer *blockchain.RPCDialer,
) (*App, error) {
	return &App{
		Config:           cfg,
		Log:              log,
		RunDeployTasks:   runDeployTasks,
		ListTasks:        listTasks,
		ListDeployments:  listDeployments,
		ShowDeployment:   showDeployment,
		RemoveDeployment: removeDeployment,
		ListNetworks:     listNetworks,
		TokenOperations:  tokenOperations,
		ShowConfig:       showConfig,
		SetConfig:        setConfig,
		RemoveConfig:     removeConfig,
		dialer:           dialer,
	}, nil
}

// Close releases open RPC connections
func (a *App) Close() {
	if a.dialer != nil {
		a.dialer.Close()
	}
}
