package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// memoryConfigStore keeps LocalConfig in memory
type memoryConfigStore struct {
	local *config.LocalConfig
}

func (s *memoryConfigStore) Exists() bool { return s.local != nil }

func (s *memoryConfigStore) Load(context.Context) (*config.LocalConfig, error) {
	if s.local == nil {
		return config.DefaultLocalConfig(), nil
	}
	copied := *s.local
	return &copied, nil
}

func (s *memoryConfigStore) Save(_ context.Context, local *config.LocalConfig) error {
	copied := *local
	s.local = &copied
	return nil
}

func (s *memoryConfigStore) Path() string { return ".tokendeploy/config.local.json" }

func TestSetConfig(t *testing.T) {
	ctx := context.Background()
	networks := staticNetworks{"sepolia": {Name: "sepolia", ChainID: 11155111}}

	t.Run("network must be configured", func(t *testing.T) {
		store := &memoryConfigStore{}
		uc := usecase.NewSetConfig(store, networks)

		_, err := uc.Run(ctx, usecase.SetConfigParams{Key: "network", Value: "mainnet"})
		require.Error(t, err)
		assert.False(t, store.Exists())

		result, err := uc.Run(ctx, usecase.SetConfigParams{Key: "network", Value: "sepolia"})
		require.NoError(t, err)
		assert.Equal(t, config.ConfigKeyNetwork, result.Key)
		assert.Equal(t, "sepolia", store.local.Network)
		assert.Equal(t, "default", store.local.Namespace)
	})

	t.Run("ns alias", func(t *testing.T) {
		store := &memoryConfigStore{}
		result, err := usecase.NewSetConfig(store, networks).Run(ctx, usecase.SetConfigParams{Key: "NS", Value: "production"})
		require.NoError(t, err)
		assert.Equal(t, config.ConfigKeyNamespace, result.Key)
		assert.Equal(t, "production", store.local.Namespace)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := usecase.NewSetConfig(&memoryConfigStore{}, networks).Run(ctx, usecase.SetConfigParams{Key: "profile", Value: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "namespace (ns), network")
	})

	t.Run("empty value", func(t *testing.T) {
		_, err := usecase.NewSetConfig(&memoryConfigStore{}, networks).Run(ctx, usecase.SetConfigParams{Key: "namespace", Value: " "})
		assert.Error(t, err)
	})
}

func TestRemoveConfig(t *testing.T) {
	ctx := context.Background()

	_, err := usecase.NewRemoveConfig(&memoryConfigStore{}).Run(ctx, usecase.RemoveConfigParams{Key: "network"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")

	store := &memoryConfigStore{local: &config.LocalConfig{Namespace: "production", Network: "sepolia"}}
	uc := usecase.NewRemoveConfig(store)

	result, err := uc.Run(ctx, usecase.RemoveConfigParams{Key: "network"})
	require.NoError(t, err)
	assert.Equal(t, "sepolia", result.RemovedValue)
	assert.Empty(t, store.local.Network)

	result, err = uc.Run(ctx, usecase.RemoveConfigParams{Key: "ns"})
	require.NoError(t, err)
	assert.Equal(t, "production", result.RemovedValue)
	assert.Equal(t, "default", store.local.Namespace)
}

func TestShowConfig(t *testing.T) {
	networks := staticNetworks{"sepolia": {Name: "sepolia"}}

	result, err := usecase.NewShowConfig(&memoryConfigStore{}, networks).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Exists)
	assert.Equal(t, "default", result.Config.Namespace)
	assert.Equal(t, []string{"localhost", "sepolia", "broken"}, result.Networks)

	store := &memoryConfigStore{local: &config.LocalConfig{Namespace: "production", Network: "sepolia"}}
	result, err = usecase.NewShowConfig(store, networks).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Exists)
	assert.Equal(t, "sepolia", result.Config.Network)
}
