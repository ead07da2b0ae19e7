package usecase

import (
	"context"

	"github.com/trebuchet-org/tokendeploy/internal/domain"
)

// ListTasksParams contains parameters for listing tasks
type ListTasksParams struct {
	Tags []string
}

// ListTasksResult contains the registered tasks
type ListTasksResult struct {
	Tasks []*domain.Task
}

// ListTasks is the use case for listing registered deployment tasks
type ListTasks struct {
	registry TaskRegistry
}

// NewListTasks creates a new ListTasks use case
func NewListTasks(registry TaskRegistry) *ListTasks {
	return &ListTasks{registry: registry}
}

// Run executes the use case. With tags it lists what a deploy with the same
// tags would run, in execution order.
func (uc *ListTasks) Run(ctx context.Context, params ListTasksParams) (*ListTasksResult, error) {
	if len(params.Tags) == 0 {
		return &ListTasksResult{Tasks: uc.registry.All()}, nil
	}

	tasks, err := uc.registry.Select(params.Tags)
	if err != nil {
		return nil, err
	}
	return &ListTasksResult{Tasks: tasks}, nil
}
