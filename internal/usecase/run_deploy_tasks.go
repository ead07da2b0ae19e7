package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
)

// ErrLiveNetworkNotConfirmed is returned when a live deployment needs
// confirmation but the run is non-interactive and --yes was not given
var ErrLiveNetworkNotConfirmed = errors.New("refusing to deploy to a live network without confirmation (use --yes)")

// TaskStatus is the final state of a task in a run
type TaskStatus string

const (
	TaskSucceeded TaskStatus = "success"
	TaskSkipped   TaskStatus = "skipped"
	TaskFailed    TaskStatus = "failed"
)

// RunDeployTasksParams contains parameters for running deployment tasks
type RunDeployTasksParams struct {
	Tags   []string
	Select bool // pick tasks interactively
	Yes    bool // skip the live network confirmation
}

// TaskOutcome is the result of a single task
type TaskOutcome struct {
	TaskID      string
	Status      TaskStatus
	Deployments []*models.DeploymentRecord
	Duration    time.Duration
	Err         error
}

// RunDeployTasksResult contains the result of a run
type RunDeployTasksResult struct {
	Network   *config.Network
	Outcomes  []TaskOutcome
	Cancelled bool
}

// Failed returns the outcome of the failed task, if any
func (r *RunDeployTasksResult) Failed() *TaskOutcome {
	for i := range r.Outcomes {
		if r.Outcomes[i].Status == TaskFailed {
			return &r.Outcomes[i]
		}
	}
	return nil
}

// RunDeployTasks runs the selected deployment tasks against the active network
type RunDeployTasks struct {
	config    *config.RuntimeConfig
	registry  TaskRegistry
	selector  TaskSelector
	confirmer Confirmer
	accounts  NamedAccountResolver
	deployer  Deployer
	ledger    DeploymentLedger
	log       *slog.Logger
	progress  ProgressSink
}

// NewRunDeployTasks creates a new RunDeployTasks use case
func NewRunDeployTasks(
	cfg *config.RuntimeConfig,
	registry TaskRegistry,
	selector TaskSelector,
	confirmer Confirmer,
	accounts NamedAccountResolver,
	deployer Deployer,
	ledger DeploymentLedger,
	log *slog.Logger,
	progress ProgressSink,
) *RunDeployTasks {
	return &RunDeployTasks{
		config:    cfg,
		registry:  registry,
		selector:  selector,
		confirmer: confirmer,
		accounts:  accounts,
		deployer:  deployer,
		ledger:    ledger,
		log:       log,
		progress:  progress,
	}
}

// Run executes the selected tasks in order. The first failing task aborts the run.
func (uc *RunDeployTasks) Run(ctx context.Context, params RunDeployTasksParams) (*RunDeployTasksResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, domain.ErrNoNetwork
	}

	result := &RunDeployTasksResult{Network: network}

	selected, err := uc.registry.Select(params.Tags)
	if err != nil {
		return nil, err
	}

	if params.Select {
		if uc.config.NonInteractive {
			return nil, fmt.Errorf("--select cannot be used in non-interactive mode")
		}
		selected, err = uc.selector.SelectTasks(ctx, selected, "Select tasks to run")
		if err != nil {
			return nil, err
		}
		if len(selected) == 0 {
			result.Cancelled = true
			return result, nil
		}
	}

	if network.Live && !params.Yes {
		if uc.config.NonInteractive {
			return nil, ErrLiveNetworkNotConfirmed
		}
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Deploy %d task(s) to live network %s", len(selected), network.Name))
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Cancelled = true
			return result, nil
		}
	}

	if uc.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.config.Timeout)
		defer cancel()
	}

	for i, task := range selected {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "task",
			Current: i + 1,
			Total:   len(selected),
			Message: fmt.Sprintf("Running %s", task.ID),
		})

		outcome := uc.runTask(ctx, task, network)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Status == TaskFailed {
			uc.progress.Error(fmt.Sprintf("%s failed", task.ID))
			return result, fmt.Errorf("task %s: %w", task.ID, outcome.Err)
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "completed",
		Current: len(selected),
		Total:   len(selected),
		Message: "All tasks completed",
	})

	return result, nil
}

func (uc *RunDeployTasks) runTask(ctx context.Context, task *domain.Task, network *config.Network) TaskOutcome {
	start := time.Now()
	env := &taskEnvironment{
		network:  network,
		accounts: uc.accounts,
		deployer: uc.deployer,
		ledger:   uc.ledger,
		log:      uc.log.With("task", task.ID),
	}

	outcome := TaskOutcome{TaskID: task.ID}

	if task.Skip != nil {
		skip, err := task.Skip(ctx, env)
		if err != nil {
			outcome.Status = TaskFailed
			outcome.Err = fmt.Errorf("skip check: %w", err)
			outcome.Duration = time.Since(start)
			return outcome
		}
		if skip {
			uc.log.Debug("task skipped", "task", task.ID)
			outcome.Status = TaskSkipped
			outcome.Duration = time.Since(start)
			return outcome
		}
	}

	err := task.Func(ctx, env)
	outcome.Deployments = env.deployments
	outcome.Duration = time.Since(start)
	if err != nil {
		outcome.Status = TaskFailed
		outcome.Err = err
		return outcome
	}

	outcome.Status = TaskSucceeded
	return outcome
}

// taskEnvironment is the domain.Environment handed to a task. It is bound to
// one network and collects the deployments the task makes.
type taskEnvironment struct {
	network     *config.Network
	accounts    NamedAccountResolver
	deployer    Deployer
	ledger      DeploymentLedger
	log         *slog.Logger
	deployments []*models.DeploymentRecord
}

func (e *taskEnvironment) Network() *config.Network { return e.network }

func (e *taskEnvironment) Logger() *slog.Logger { return e.log }

func (e *taskEnvironment) NamedAccounts(ctx context.Context) (map[string]common.Address, error) {
	return e.accounts.NamedAccounts(ctx)
}

func (e *taskEnvironment) Deploy(ctx context.Context, contractName string, opts domain.DeployOptions) (*models.DeploymentRecord, error) {
	record, err := e.deployer.Deploy(ctx, e.network, models.DeploymentRequest{
		ContractName:    contractName,
		ConstructorArgs: opts.Args,
		From:            opts.From,
		Log:             opts.Log,
	})
	if err != nil {
		return nil, err
	}
	e.deployments = append(e.deployments, record)
	return record, nil
}

func (e *taskEnvironment) Get(ctx context.Context, contractName string) (*models.DeploymentRecord, error) {
	return e.ledger.Get(ctx, e.network, contractName)
}
