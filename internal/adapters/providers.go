package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/tokendeploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/tokendeploy/internal/adapters/fs"
	"github.com/trebuchet-org/tokendeploy/internal/adapters/interactive"
	"github.com/trebuchet-org/tokendeploy/internal/adapters/network"
	"github.com/trebuchet-org/tokendeploy/internal/adapters/progress"
	artifacts "github.com/trebuchet-org/tokendeploy/internal/adapters/repository/contracts"
	"github.com/trebuchet-org/tokendeploy/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/tokendeploy/internal/adapters/senders"
	"github.com/trebuchet-org/tokendeploy/internal/tasks"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// RepositorySet provides filesystem-backed storage
var RepositorySet = wire.NewSet(
	deployments.NewFileRepository,
	wire.Bind(new(usecase.DeploymentLedger), new(*deployments.FileRepository)),

	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),

	fs.NewLocalConfigStore,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStore)),
)

// SendersSet provides named accounts and their signers
var SendersSet = wire.NewSet(
	senders.NewService,
	wire.Bind(new(usecase.NamedAccountResolver), new(*senders.Service)),
	wire.Bind(new(usecase.SignerProvider), new(*senders.Service)),
)

// BlockchainSet provides RPC-backed implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewRPCDialer,
	wire.Bind(new(blockchain.Dialer), new(*blockchain.RPCDialer)),
	wire.Bind(new(usecase.ChainIDReader), new(*blockchain.RPCDialer)),

	blockchain.NewDeployer,
	wire.Bind(new(usecase.Deployer), new(*blockchain.Deployer)),

	blockchain.NewContractCaller,
	wire.Bind(new(usecase.ContractCaller), new(*blockchain.ContractCaller)),
)

// TasksSet provides the built-in deployment tasks
var TasksSet = wire.NewSet(
	tasks.NewDefaultRegistry,
	wire.Bind(new(usecase.TaskRegistry), new(*tasks.Registry)),
)

// InteractiveSet provides terminal prompts
var InteractiveSet = wire.NewSet(
	interactive.NewPrompter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.Prompter)),
	wire.Bind(new(usecase.TaskSelector), new(*interactive.Prompter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	network.NewResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*network.Resolver)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	progress.NewSink,

	RepositorySet,
	SendersSet,
	BlockchainSet,
	TasksSet,
	InteractiveSet,
	ConfigSet,
)
