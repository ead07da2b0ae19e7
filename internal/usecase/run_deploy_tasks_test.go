package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
	"github.com/trebuchet-org/tokendeploy/internal/tasks"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

var (
	deployerAddr = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	tokenAddr    = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
)

func localNetwork() *config.Network {
	return &config.Network{Name: "localhost", ChainID: 31337, RPCURL: "http://127.0.0.1:8545"}
}

type runFixture struct {
	cfg       *config.RuntimeConfig
	accounts  *MockAccounts
	deployer  *MockDeployer
	ledger    *MockLedger
	confirmer *MockConfirmer
	selector  *MockSelector
	sink      *recordingSink
}

func newRunFixture(network *config.Network) *runFixture {
	return &runFixture{
		cfg:       &config.RuntimeConfig{Network: network, Namespace: "default"},
		accounts:  new(MockAccounts),
		deployer:  new(MockDeployer),
		ledger:    new(MockLedger),
		confirmer: new(MockConfirmer),
		selector:  new(MockSelector),
		sink:      &recordingSink{},
	}
}

func (f *runFixture) useCase(registry usecase.TaskRegistry) *usecase.RunDeployTasks {
	return usecase.NewRunDeployTasks(f.cfg, registry, f.selector, f.confirmer, f.accounts, f.deployer, f.ledger, discardLogger(), f.sink)
}

func TestRunDeployTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("deploys ZHMToken from the deployer", func(t *testing.T) {
		f := newRunFixture(localNetwork())
		f.accounts.On("NamedAccounts", mock.Anything).Return(map[string]common.Address{"deployer": deployerAddr}, nil)

		record := &models.DeploymentRecord{ContractName: "ZHMToken", Address: tokenAddr}
		f.deployer.On("Deploy", mock.Anything, f.cfg.Network, models.DeploymentRequest{
			ContractName:    "ZHMToken",
			ConstructorArgs: []any{},
			From:            deployerAddr,
			Log:             true,
		}).Return(record, nil).Once()

		result, err := f.useCase(tasks.NewDefaultRegistry()).Run(ctx, usecase.RunDeployTasksParams{
			Tags: []string{tasks.ZHMTokenTag},
		})
		require.NoError(t, err)
		require.Len(t, result.Outcomes, 1)

		outcome := result.Outcomes[0]
		assert.Equal(t, "deploy_zhm_token", outcome.TaskID)
		assert.Equal(t, usecase.TaskSucceeded, outcome.Status)
		assert.Equal(t, []*models.DeploymentRecord{record}, outcome.Deployments)
		assert.Nil(t, result.Failed())
		assert.Equal(t, "localhost", result.Network.Name)

		f.deployer.AssertExpectations(t)
		f.confirmer.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
	})

	t.Run("missing deployer aborts with configuration error", func(t *testing.T) {
		f := newRunFixture(localNetwork())
		f.accounts.On("NamedAccounts", mock.Anything).Return(map[string]common.Address{}, nil)

		result, err := f.useCase(tasks.NewDefaultRegistry()).Run(ctx, usecase.RunDeployTasksParams{})
		require.Error(t, err)

		var cfgErr *domain.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, domain.StageAccountResolution, domain.StageOf(err))
		assert.Contains(t, err.Error(), "deploy_zhm_token")

		require.NotNil(t, result)
		failed := result.Failed()
		require.NotNil(t, failed)
		assert.Equal(t, usecase.TaskFailed, failed.Status)
		assert.Empty(t, failed.Deployments)
		assert.Len(t, f.sink.errors, 1)
		f.deployer.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deploy error keeps its type", func(t *testing.T) {
		f := newRunFixture(localNetwork())
		f.accounts.On("NamedAccounts", mock.Anything).Return(map[string]common.Address{"deployer": deployerAddr}, nil)
		txErr := &domain.TransactionError{Kind: domain.TxReverted, Stage: domain.StageConfirmation}
		f.deployer.On("Deploy", mock.Anything, mock.Anything, mock.Anything).Return(nil, txErr)

		result, err := f.useCase(tasks.NewDefaultRegistry()).Run(ctx, usecase.RunDeployTasksParams{})
		require.Error(t, err)

		var got *domain.TransactionError
		require.True(t, errors.As(err, &got))
		assert.Same(t, txErr, got)
		assert.Same(t, txErr, result.Failed().Err)
	})

	t.Run("unknown tag selects nothing", func(t *testing.T) {
		f := newRunFixture(localNetwork())

		_, err := f.useCase(tasks.NewDefaultRegistry()).Run(ctx, usecase.RunDeployTasksParams{Tags: []string{"Governance"}})
		var tagErr *domain.UnknownTagError
		require.True(t, errors.As(err, &tagErr))
		f.accounts.AssertNotCalled(t, "NamedAccounts", mock.Anything)
	})

	t.Run("requires a network", func(t *testing.T) {
		f := newRunFixture(nil)
		_, err := f.useCase(tasks.NewDefaultRegistry()).Run(ctx, usecase.RunDeployTasksParams{})
		assert.ErrorIs(t, err, domain.ErrNoNetwork)
	})
}

func TestRunDeployTasksOrderingAndSkip(t *testing.T) {
	ctx := context.Background()

	var ran []string
	record := func(id string) domain.TaskFunc {
		return func(context.Context, domain.Environment) error {
			ran = append(ran, id)
			return nil
		}
	}

	registry := tasks.NewRegistry()
	registry.MustRegister(&domain.Task{ID: "base", Tags: []string{"Base"}, Func: record("base")})
	registry.MustRegister(&domain.Task{
		ID:   "optional",
		Tags: []string{"Optional"},
		Skip: func(ctx context.Context, env domain.Environment) (bool, error) {
			return env.Network().Name == "localhost", nil
		},
		Func: record("optional"),
	})
	registry.MustRegister(&domain.Task{
		ID:   "broken",
		Tags: []string{"Broken"},
		Func: func(context.Context, domain.Environment) error {
			ran = append(ran, "broken")
			return errors.New("boom")
		},
	})
	registry.MustRegister(&domain.Task{ID: "after", Tags: []string{"After"}, Func: record("after")})

	f := newRunFixture(localNetwork())
	result, err := f.useCase(registry).Run(ctx, usecase.RunDeployTasksParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task broken: boom")

	assert.Equal(t, []string{"base", "broken"}, ran)
	require.Len(t, result.Outcomes, 3)
	assert.Equal(t, usecase.TaskSucceeded, result.Outcomes[0].Status)
	assert.Equal(t, usecase.TaskSkipped, result.Outcomes[1].Status)
	assert.Equal(t, usecase.TaskFailed, result.Outcomes[2].Status)
}

func TestRunDeployTasksLiveNetwork(t *testing.T) {
	ctx := context.Background()
	live := &config.Network{Name: "mainnet", ChainID: 1, Live: true}

	t.Run("non-interactive without --yes refuses", func(t *testing.T) {
		f := newRunFixture(live)
		f.cfg.NonInteractive = true

		_, err := f.useCase(tasks.NewDefaultRegistry()).Run(ctx, usecase.RunDeployTasksParams{})
		assert.ErrorIs(t, err, usecase.ErrLiveNetworkNotConfirmed)
		f.deployer.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("declined confirmation cancels", func(t *testing.T) {
		f := newRunFixture(live)
		f.confirmer.On("Confirm", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return prompt == "Deploy 1 task(s) to live network mainnet"
		})).Return(false, nil)

		result, err := f.useCase(tasks.NewDefaultRegistry()).Run(ctx, usecase.RunDeployTasksParams{})
		require.NoError(t, err)
		assert.True(t, result.Cancelled)
		assert.Empty(t, result.Outcomes)
		f.accounts.AssertNotCalled(t, "NamedAccounts", mock.Anything)
	})

	t.Run("--yes skips confirmation", func(t *testing.T) {
		f := newRunFixture(live)
		f.accounts.On("NamedAccounts", mock.Anything).Return(map[string]common.Address{"deployer": deployerAddr}, nil)
		f.deployer.On("Deploy", mock.Anything, live, mock.Anything).Return(&models.DeploymentRecord{}, nil)

		result, err := f.useCase(tasks.NewDefaultRegistry()).Run(ctx, usecase.RunDeployTasksParams{Yes: true})
		require.NoError(t, err)
		assert.False(t, result.Cancelled)
		f.confirmer.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
	})
}

func TestRunDeployTasksSelect(t *testing.T) {
	ctx := context.Background()

	t.Run("empty selection cancels", func(t *testing.T) {
		f := newRunFixture(localNetwork())
		f.selector.On("SelectTasks", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Task{}, nil)

		result, err := f.useCase(tasks.NewDefaultRegistry()).Run(ctx, usecase.RunDeployTasksParams{Select: true})
		require.NoError(t, err)
		assert.True(t, result.Cancelled)
	})

	t.Run("select is rejected in non-interactive mode", func(t *testing.T) {
		f := newRunFixture(localNetwork())
		f.cfg.NonInteractive = true

		_, err := f.useCase(tasks.NewDefaultRegistry()).Run(ctx, usecase.RunDeployTasksParams{Select: true})
		assert.Error(t, err)
		f.selector.AssertNotCalled(t, "SelectTasks", mock.Anything, mock.Anything, mock.Anything)
	})
}

// reusingDeployer behaves like the real deployer with respect to reuse: a
// second request for the same contract returns the recorded deployment.
type reusingDeployer struct {
	records     map[string]*models.DeploymentRecord
	submissions int
}

func (d *reusingDeployer) Deploy(_ context.Context, _ *config.Network, req models.DeploymentRequest) (*models.DeploymentRecord, error) {
	if existing, ok := d.records[req.ContractName]; ok {
		reused := *existing
		reused.Reused = true
		return &reused, nil
	}
	d.submissions++
	record := &models.DeploymentRecord{ContractName: req.ContractName, Address: tokenAddr, DeployedAt: time.Now()}
	d.records[req.ContractName] = record
	return record, nil
}

func TestRunDeployTasksIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newRunFixture(localNetwork())
	f.accounts.On("NamedAccounts", mock.Anything).Return(map[string]common.Address{"deployer": deployerAddr}, nil)

	deployer := &reusingDeployer{records: make(map[string]*models.DeploymentRecord)}
	uc := usecase.NewRunDeployTasks(f.cfg, tasks.NewDefaultRegistry(), f.selector, f.confirmer, f.accounts, deployer, f.ledger, discardLogger(), usecase.NopProgress{})

	first, err := uc.Run(ctx, usecase.RunDeployTasksParams{})
	require.NoError(t, err)
	second, err := uc.Run(ctx, usecase.RunDeployTasksParams{})
	require.NoError(t, err)

	assert.Equal(t, 1, deployer.submissions)
	assert.False(t, first.Outcomes[0].Deployments[0].Reused)
	assert.True(t, second.Outcomes[0].Deployments[0].Reused)
	assert.Equal(t, first.Outcomes[0].Deployments[0].Address, second.Outcomes[0].Deployments[0].Address)
}
