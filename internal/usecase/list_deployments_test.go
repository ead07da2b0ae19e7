package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

func TestListDeployments(t *testing.T) {
	ctx := context.Background()
	network := localNetwork()
	cfg := &config.RuntimeConfig{Network: network}

	records := func() []*models.DeploymentRecord {
		return []*models.DeploymentRecord{
			{ContractName: "ZHMToken", Address: tokenAddr},
			{ContractName: "Faucet", Address: common.HexToAddress("0x2222222222222222222222222222222222222222")},
			{ContractName: "ZHMVault", Address: common.HexToAddress("0x3333333333333333333333333333333333333333")},
		}
	}

	t.Run("list all deployments sorted by name", func(t *testing.T) {
		ledger := new(MockLedger)
		ledger.On("List", ctx, network).Return(records(), nil)
		sink := &recordingSink{}

		result, err := usecase.NewListDeployments(cfg, ledger, sink).Run(ctx, usecase.ListDeploymentsParams{})
		require.NoError(t, err)

		require.Len(t, result.Deployments, 3)
		assert.Equal(t, "Faucet", result.Deployments[0].ContractName)
		assert.Equal(t, "ZHMToken", result.Deployments[1].ContractName)
		assert.Equal(t, "ZHMVault", result.Deployments[2].ContractName)
		assert.Equal(t, network, result.Network)

		require.Len(t, sink.events, 2)
		assert.Equal(t, "loading", sink.events[0].Stage)
		assert.Equal(t, "complete", sink.events[1].Stage)
		assert.Equal(t, 3, sink.events[1].Total)
	})

	t.Run("filter by contract name", func(t *testing.T) {
		ledger := new(MockLedger)
		ledger.On("List", ctx, network).Return(records(), nil)

		result, err := usecase.NewListDeployments(cfg, ledger, usecase.NopProgress{}).Run(ctx, usecase.ListDeploymentsParams{ContractName: "zhm"})
		require.NoError(t, err)
		require.Len(t, result.Deployments, 2)
		assert.Equal(t, "ZHMToken", result.Deployments[0].ContractName)
	})

	t.Run("ledger error", func(t *testing.T) {
		ledger := new(MockLedger)
		ledger.On("List", ctx, network).Return(nil, domain.ErrNetworkMismatch)

		_, err := usecase.NewListDeployments(cfg, ledger, usecase.NopProgress{}).Run(ctx, usecase.ListDeploymentsParams{})
		assert.ErrorIs(t, err, domain.ErrNetworkMismatch)
	})

	t.Run("requires a network", func(t *testing.T) {
		_, err := usecase.NewListDeployments(&config.RuntimeConfig{}, new(MockLedger), usecase.NopProgress{}).Run(ctx, usecase.ListDeploymentsParams{})
		assert.ErrorIs(t, err, domain.ErrNoNetwork)
	})
}

func TestShowDeployment(t *testing.T) {
	ctx := context.Background()
	network := localNetwork()
	cfg := &config.RuntimeConfig{Network: network}

	ledger := new(MockLedger)
	ledger.On("Get", ctx, network, "ZHMToken").Return(&models.DeploymentRecord{ContractName: "ZHMToken", Address: tokenAddr}, nil)
	ledger.On("Get", ctx, network, "Missing").Return(nil, domain.ErrNotFound)

	uc := usecase.NewShowDeployment(cfg, ledger)

	result, err := uc.Run(ctx, usecase.ShowDeploymentParams{ContractName: "ZHMToken"})
	require.NoError(t, err)
	assert.Equal(t, tokenAddr, result.Deployment.Address)

	_, err = uc.Run(ctx, usecase.ShowDeploymentParams{ContractName: "Missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Missing on localhost")

	_, err = uc.Run(ctx, usecase.ShowDeploymentParams{})
	assert.Error(t, err)
}

func TestRemoveDeployment(t *testing.T) {
	ctx := context.Background()
	network := localNetwork()
	record := &models.DeploymentRecord{ContractName: "ZHMToken", Address: tokenAddr}

	t.Run("force deletes without asking", func(t *testing.T) {
		ledger := new(MockLedger)
		ledger.On("Get", ctx, network, "ZHMToken").Return(record, nil)
		ledger.On("Delete", ctx, network, "ZHMToken").Return(nil).Once()
		confirmer := new(MockConfirmer)

		result, err := usecase.NewRemoveDeployment(&config.RuntimeConfig{Network: network}, ledger, confirmer).
			Run(ctx, usecase.RemoveDeploymentParams{ContractName: "ZHMToken", Force: true})
		require.NoError(t, err)
		assert.Same(t, record, result.Removed)
		ledger.AssertExpectations(t)
		confirmer.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
	})

	t.Run("declined confirmation keeps the record", func(t *testing.T) {
		ledger := new(MockLedger)
		ledger.On("Get", ctx, network, "ZHMToken").Return(record, nil)
		confirmer := new(MockConfirmer)
		confirmer.On("Confirm", ctx, mock.Anything).Return(false, nil)

		result, err := usecase.NewRemoveDeployment(&config.RuntimeConfig{Network: network}, ledger, confirmer).
			Run(ctx, usecase.RemoveDeploymentParams{ContractName: "ZHMToken"})
		require.NoError(t, err)
		assert.True(t, result.Cancelled)
		ledger.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-interactive needs force", func(t *testing.T) {
		ledger := new(MockLedger)
		ledger.On("Get", ctx, network, "ZHMToken").Return(record, nil)

		_, err := usecase.NewRemoveDeployment(&config.RuntimeConfig{Network: network, NonInteractive: true}, ledger, new(MockConfirmer)).
			Run(ctx, usecase.RemoveDeploymentParams{ContractName: "ZHMToken"})
		assert.Error(t, err)
		ledger.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

// staticNetworks resolves networks from a fixed map
type staticNetworks map[string]*config.Network

func (s staticNetworks) NetworkNames() []string {
	return []string{"localhost", "sepolia", "broken"}
}

func (s staticNetworks) ResolveNetwork(name string) (*config.Network, error) {
	network, ok := s[name]
	if !ok {
		return nil, errors.New("rpc_url is required")
	}
	return network, nil
}

type chainIDs map[string]uint64

func (c chainIDs) ChainID(_ context.Context, network *config.Network) (uint64, error) {
	id, ok := c[network.Name]
	if !ok {
		return 0, errors.New("connection refused")
	}
	return id, nil
}

func TestListNetworks(t *testing.T) {
	ctx := context.Background()
	networks := staticNetworks{
		"localhost": localNetwork(),
		"sepolia":   {Name: "sepolia", ChainID: 11155111, Live: true},
	}
	checker := chainIDs{"localhost": 31337}

	t.Run("without check", func(t *testing.T) {
		result, err := usecase.NewListNetworks(networks, checker).Run(ctx, usecase.ListNetworksParams{})
		require.NoError(t, err)
		require.Len(t, result.Networks, 3)
		assert.Equal(t, "localhost", result.Networks[0].Network.Name)
		assert.Zero(t, result.Networks[0].LiveChainID)
		assert.NoError(t, result.Networks[1].Error)
		assert.Error(t, result.Networks[2].Error)
		assert.Equal(t, "broken", result.Networks[2].Network.Name)
	})

	t.Run("with check", func(t *testing.T) {
		result, err := usecase.NewListNetworks(networks, checker).Run(ctx, usecase.ListNetworksParams{Check: true})
		require.NoError(t, err)
		assert.Equal(t, uint64(31337), result.Networks[0].LiveChainID)
		assert.Error(t, result.Networks[1].Error)
	})
}
