package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
)

func TestBuildNamespaceChain(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		expected  []string
	}{
		{"default", "default", []string{"default"}},
		{"single level", "production", []string{"default", "production"}},
		{"nested", "production.eu.v2", []string{"default", "production", "production.eu", "production.eu.v2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildNamespaceChain(tt.namespace))
		})
	}
}

func TestResolveNamespace(t *testing.T) {
	cfg := &config.ProjectConfig{
		Accounts: map[string]config.AccountConfig{
			"anvil":  {Type: config.AccountTypePrivateKey, PrivateKey: "0x01"},
			"ops":    {Type: config.AccountTypeKeystore, Keystore: "keys/ops.json"},
			"viewer": {Type: config.AccountTypeAddress, Address: "0x00000000000000000000000000000000000000aa"},
		},
		Namespace: map[string]config.NamespaceRoles{
			"default":       {"deployer": "anvil", "treasury": "viewer"},
			"production":    {"deployer": "ops"},
			"production.eu": {"treasury": "missing"},
		},
	}

	t.Run("default namespace", func(t *testing.T) {
		resolved := ResolveNamespace(cfg, "default", &bytes.Buffer{})
		assert.Equal(t, "anvil", resolved.AccountNames["deployer"])
		assert.Equal(t, "viewer", resolved.AccountNames["treasury"])
	})

	t.Run("empty name resolves default", func(t *testing.T) {
		resolved := ResolveNamespace(cfg, "", &bytes.Buffer{})
		assert.Equal(t, "default", resolved.Name)
		assert.Equal(t, "anvil", resolved.AccountNames["deployer"])
	})

	t.Run("child overrides parent role", func(t *testing.T) {
		resolved := ResolveNamespace(cfg, "production", &bytes.Buffer{})
		assert.Equal(t, "ops", resolved.AccountNames["deployer"])
		assert.Equal(t, config.AccountTypeKeystore, resolved.Accounts["deployer"].Type)
		// Inherited from default
		assert.Equal(t, "viewer", resolved.AccountNames["treasury"])
	})

	t.Run("unknown account is skipped with warning", func(t *testing.T) {
		var warn bytes.Buffer
		resolved := ResolveNamespace(cfg, "production.eu", &warn)

		assert.Equal(t, "ops", resolved.AccountNames["deployer"])
		assert.NotContains(t, resolved.Accounts, "treasury")
		assert.Contains(t, warn.String(), `unknown account "missing"`)
	})

	t.Run("namespace without roles", func(t *testing.T) {
		empty := &config.ProjectConfig{
			Accounts:  map[string]config.AccountConfig{},
			Namespace: map[string]config.NamespaceRoles{},
		}
		resolved := ResolveNamespace(empty, "staging", &bytes.Buffer{})
		assert.Empty(t, resolved.Accounts)
	})
}
