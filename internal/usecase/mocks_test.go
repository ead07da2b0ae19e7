package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// MockAccounts is a mock implementation of NamedAccountResolver
type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) NamedAccounts(ctx context.Context) (map[string]common.Address, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]common.Address), args.Error(1)
}

// MockDeployer is a mock implementation of Deployer
type MockDeployer struct {
	mock.Mock
}

func (m *MockDeployer) Deploy(ctx context.Context, network *config.Network, req models.DeploymentRequest) (*models.DeploymentRecord, error) {
	args := m.Called(ctx, network, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentRecord), args.Error(1)
}

// MockLedger is a mock implementation of DeploymentLedger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Get(ctx context.Context, network *config.Network, contractName string) (*models.DeploymentRecord, error) {
	args := m.Called(ctx, network, contractName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentRecord), args.Error(1)
}

func (m *MockLedger) List(ctx context.Context, network *config.Network) ([]*models.DeploymentRecord, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DeploymentRecord), args.Error(1)
}

func (m *MockLedger) Save(ctx context.Context, network *config.Network, record *models.DeploymentRecord) error {
	args := m.Called(ctx, network, record)
	return args.Error(0)
}

func (m *MockLedger) Delete(ctx context.Context, network *config.Network, contractName string) error {
	args := m.Called(ctx, network, contractName)
	return args.Error(0)
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	args := m.Called(ctx, prompt)
	return args.Bool(0), args.Error(1)
}

// MockSelector is a mock implementation of TaskSelector
type MockSelector struct {
	mock.Mock
}

func (m *MockSelector) SelectTasks(ctx context.Context, tasks []*domain.Task, prompt string) ([]*domain.Task, error) {
	args := m.Called(ctx, tasks, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

// MockCaller is a mock implementation of ContractCaller
type MockCaller struct {
	mock.Mock
}

func (m *MockCaller) Call(ctx context.Context, network *config.Network, contract common.Address, contractABI *abi.ABI, method string, args ...any) ([]any, error) {
	ret := m.Called(ctx, network, contract, method, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]any), ret.Error(1)
}

func (m *MockCaller) Transact(ctx context.Context, network *config.Network, from common.Address, contract common.Address, contractABI *abi.ABI, method string, args ...any) (*models.TxResult, error) {
	ret := m.Called(ctx, network, from, contract, method, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*models.TxResult), ret.Error(1)
}

// MockArtifacts is a mock implementation of ArtifactRepository
type MockArtifacts struct {
	mock.Mock
}

func (m *MockArtifacts) Get(ctx context.Context, contractName string) (*models.Artifact, error) {
	args := m.Called(ctx, contractName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

// recordingSink captures progress events
type recordingSink struct {
	events []usecase.ProgressEvent
	errors []string
}

func (s *recordingSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	s.events = append(s.events, event)
}

func (s *recordingSink) Info(string) {}

func (s *recordingSink) Error(message string) {
	s.errors = append(s.errors, message)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
