package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
)

func noop(context.Context, domain.Environment) error { return nil }

func taskIDs(tasks []*domain.Task) []string {
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&domain.Task{ID: "a", Func: noop}))

	assert.Error(t, r.Register(&domain.Task{ID: "a", Func: noop}), "duplicate ID")
	assert.Error(t, r.Register(&domain.Task{ID: "", Func: noop}), "empty ID")
	assert.Error(t, r.Register(&domain.Task{ID: "b"}), "missing func")
	assert.Panics(t, func() { r.MustRegister(&domain.Task{ID: "a", Func: noop}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	assert.Equal(t, []string{"deploy_zhm_token"}, taskIDs(r.All()))
	assert.Equal(t, []string{ZHMTokenTag}, r.Tags())

	selected, err := r.Select([]string{ZHMTokenTag})
	require.NoError(t, err)
	assert.Equal(t, []string{"deploy_zhm_token"}, taskIDs(selected))

	selected, err = r.Select(nil)
	require.NoError(t, err)
	assert.Len(t, selected, 1)
}

func TestRegistrySelect(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&domain.Task{ID: "token", Tags: []string{"Token"}, Func: noop})
	r.MustRegister(&domain.Task{ID: "vault", Tags: []string{"Vault"}, Dependencies: []string{"Token"}, Func: noop})
	r.MustRegister(&domain.Task{ID: "router", Tags: []string{"Router", "Periphery"}, Dependencies: []string{"Vault"}, Func: noop})
	r.MustRegister(&domain.Task{ID: "faucet", Tags: []string{"Faucet", "Periphery"}, Func: noop})

	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{"no tags selects everything", nil, []string{"token", "vault", "router", "faucet"}},
		{"single tag", []string{"Token"}, []string{"token"}},
		{"dependencies come first", []string{"Vault"}, []string{"token", "vault"}},
		{"transitive dependencies", []string{"Router"}, []string{"token", "vault", "router"}},
		{"shared tag", []string{"Periphery"}, []string{"token", "vault", "router", "faucet"}},
		{"comma separated", []string{"Faucet, Token"}, []string{"token", "faucet"}},
		{"duplicates collapse", []string{"Token", "Token"}, []string{"token"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, err := r.Select(tt.tags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, taskIDs(selected))
		})
	}
}

func TestRegistrySelectUnknownTag(t *testing.T) {
	r := NewDefaultRegistry()

	t.Run("near miss gets a suggestion", func(t *testing.T) {
		_, err := r.Select([]string{"ERC20ZHM"})
		require.Error(t, err)

		var tagErr *domain.UnknownTagError
		require.True(t, errors.As(err, &tagErr))
		assert.Equal(t, []string{"ERC20ZHM"}, tagErr.Tags)
		assert.Contains(t, tagErr.Suggestions, ZHMTokenTag)
	})

	t.Run("tags are case sensitive", func(t *testing.T) {
		_, err := r.Select([]string{"erc20zhm202330552162"})
		var tagErr *domain.UnknownTagError
		require.True(t, errors.As(err, &tagErr))
	})

	t.Run("unrelated tag selects nothing", func(t *testing.T) {
		selected, err := r.Select([]string{"Governance"})
		require.Error(t, err)
		assert.Nil(t, selected)
	})
}

func TestRegistrySelectBrokenDependencies(t *testing.T) {
	t.Run("missing dependency tag", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(&domain.Task{ID: "a", Tags: []string{"A"}, Dependencies: []string{"Missing"}, Func: noop})

		_, err := r.Select([]string{"A"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing")
	})

	t.Run("cycle", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(&domain.Task{ID: "a", Tags: []string{"A"}, Dependencies: []string{"B"}, Func: noop})
		r.MustRegister(&domain.Task{ID: "b", Tags: []string{"B"}, Dependencies: []string{"A"}, Func: noop})

		_, err := r.Select([]string{"A"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cycle")
	})
}
