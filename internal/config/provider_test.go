package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
)

func TestProvider(t *testing.T) {
	t.Run("builds runtime config with network", func(t *testing.T) {
		dir := t.TempDir()
		writeProjectFile(t, dir, `
[networks.localhost]
rpc_url = "http://127.0.0.1:8545"
chain_id = 31337
`)

		v := SetupViper(dir, nil)
		v.Set("network", "localhost")
		v.Set("namespace", "staging")

		cfg, err := Provider(v)
		require.NoError(t, err)

		assert.Equal(t, dir, cfg.ProjectRoot)
		assert.Equal(t, filepath.Join(dir, DeploymentsDir), cfg.DeploymentsDir)
		assert.Equal(t, "staging", cfg.Namespace)
		assert.Equal(t, 10*time.Minute, cfg.Timeout)
		require.NotNil(t, cfg.Network)
		assert.Equal(t, "localhost", cfg.Network.Name)
		assert.Equal(t, uint64(31337), cfg.Network.ChainID)
	})

	t.Run("defaults namespace and leaves network nil", func(t *testing.T) {
		dir := t.TempDir()
		writeProjectFile(t, dir, "")

		cfg, err := Provider(SetupViper(dir, nil))
		require.NoError(t, err)
		assert.Equal(t, "default", cfg.Namespace)
		assert.Nil(t, cfg.Network)
	})

	t.Run("unknown network lists available ones", func(t *testing.T) {
		dir := t.TempDir()
		writeProjectFile(t, dir, `
[networks.localhost]
rpc_url = "http://127.0.0.1:8545"

[networks.sepolia]
rpc_url = "https://rpc.sepolia.example"
`)

		v := SetupViper(dir, nil)
		v.Set("network", "mainnet")

		_, err := Provider(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "available: localhost, sepolia")
	})
}

func TestResolveNetwork(t *testing.T) {
	project := &config.ProjectConfig{
		Networks: map[string]config.NetworkConfig{
			"sepolia": {RPCURL: "https://rpc.sepolia.example", ChainID: 11155111, Live: true},
			"custom":  {RPCURL: "http://custom", Explorer: "https://explorer.custom"},
		},
	}

	network, err := ResolveNetwork(project, "sepolia")
	require.NoError(t, err)
	assert.Equal(t, "https://sepolia.etherscan.io", network.ExplorerURL)
	assert.True(t, network.Live)

	network, err = ResolveNetwork(project, "custom")
	require.NoError(t, err)
	assert.Equal(t, "https://explorer.custom", network.ExplorerURL)

	_, err = ResolveNetwork(&config.ProjectConfig{}, "sepolia")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no [networks] configured")
}
