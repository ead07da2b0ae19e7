package domain

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
)

// DeployOptions are the options a task passes to Environment.Deploy
type DeployOptions struct {
	From common.Address
	Args []any
	Log  bool
}

// Environment is what a deployment task sees of the outside world. It is
// bound to a single network for the duration of a run.
type Environment interface {
	Network() *config.Network
	// NamedAccounts resolves role names (e.g. "deployer") to addresses
	NamedAccounts(ctx context.Context) (map[string]common.Address, error)
	// Deploy submits a contract creation and records the result in the ledger
	Deploy(ctx context.Context, contractName string, opts DeployOptions) (*models.DeploymentRecord, error)
	// Get returns a previously recorded deployment
	Get(ctx context.Context, contractName string) (*models.DeploymentRecord, error)
	Logger() *slog.Logger
}

// TaskFunc is the body of a deployment task
type TaskFunc func(ctx context.Context, env Environment) error

// Task is the registration record of a deployment task. Tags and
// Dependencies are fixed at registration.
type Task struct {
	ID           string
	Tags         []string
	Dependencies []string // tags of tasks that must run first
	Skip         func(ctx context.Context, env Environment) (bool, error)
	Func         TaskFunc
}

// HasTag reports whether the task carries tag
func (t *Task) HasTag(tag string) bool {
	return lo.Contains(t.Tags, tag)
}

// HasAnyTag reports whether the task carries at least one of tags
func (t *Task) HasAnyTag(tags []string) bool {
	return len(lo.Intersect(t.Tags, tags)) > 0
}
