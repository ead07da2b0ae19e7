package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// ContractName filters by a case-insensitive substring of the contract name
	ContractName string
}

// DeploymentListResult contains the deployments recorded on a network
type DeploymentListResult struct {
	Network     *config.Network
	Deployments []*models.DeploymentRecord
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	config *config.RuntimeConfig
	ledger DeploymentLedger
	sink   ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, ledger DeploymentLedger, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		config: cfg,
		ledger: ledger,
		sink:   sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	if uc.config.Network == nil {
		return nil, domain.ErrNoNetwork
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments from ledger",
		Spinner: true,
	})

	deployments, err := uc.ledger.List(ctx, uc.config.Network)
	if err != nil {
		return nil, err
	}

	if params.ContractName != "" {
		filter := strings.ToLower(params.ContractName)
		filtered := deployments[:0]
		for _, dep := range deployments {
			if strings.Contains(strings.ToLower(dep.ContractName), filter) {
				filtered = append(filtered, dep)
			}
		}
		deployments = filtered
	}

	sort.Slice(deployments, func(i, j int) bool {
		return deployments[i].ContractName < deployments[j].ContractName
	})

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Network:     uc.config.Network,
		Deployments: deployments,
	}, nil
}
