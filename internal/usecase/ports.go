package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
)

// NamedAccountResolver resolves role names to addresses for the active namespace
type NamedAccountResolver interface {
	NamedAccounts(ctx context.Context) (map[string]common.Address, error)
}

// SignerProvider builds transaction signers for configured accounts
type SignerProvider interface {
	TransactOpts(ctx context.Context, from common.Address, chainID *big.Int) (*bind.TransactOpts, error)
}

// Deployer is the deploy capability: it submits a contract creation, waits
// for it and records it. Implementations skip the submission when a matching
// deployment already exists.
type Deployer interface {
	Deploy(ctx context.Context, network *config.Network, req models.DeploymentRequest) (*models.DeploymentRecord, error)
}

// DeploymentLedger handles persistence of deployment records per network
type DeploymentLedger interface {
	Get(ctx context.Context, network *config.Network, contractName string) (*models.DeploymentRecord, error)
	List(ctx context.Context, network *config.Network) ([]*models.DeploymentRecord, error)
	Save(ctx context.Context, network *config.Network, record *models.DeploymentRecord) error
	Delete(ctx context.Context, network *config.Network, contractName string) error
}

// ArtifactRepository provides access to compiled contracts
type ArtifactRepository interface {
	Get(ctx context.Context, contractName string) (*models.Artifact, error)
}

// ContractCaller performs calls and transactions against deployed contracts
type ContractCaller interface {
	Call(ctx context.Context, network *config.Network, contract common.Address, contractABI *abi.ABI, method string, args ...any) ([]any, error)
	Transact(ctx context.Context, network *config.Network, from common.Address, contract common.Address, contractABI *abi.ABI, method string, args ...any) (*models.TxResult, error)
}

// TaskRegistry holds the registered deployment tasks
type TaskRegistry interface {
	All() []*domain.Task
	Select(tags []string) ([]*domain.Task, error)
}

// TaskSelector handles interactive selection of tasks
type TaskSelector interface {
	SelectTasks(ctx context.Context, tasks []*domain.Task, prompt string) ([]*domain.Task, error)
}

// Confirmer asks the user for a yes/no confirmation
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// NetworkResolver resolves configured networks by name
type NetworkResolver interface {
	NetworkNames() []string
	ResolveNetwork(name string) (*config.Network, error)
}

// ChainIDReader queries a node for its chain ID
type ChainIDReader interface {
	ChainID(ctx context.Context, network *config.Network) (uint64, error)
}

// LocalConfigStore persists the per-checkout network and namespace defaults
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, local *config.LocalConfig) error
	Path() string
}
