package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
)

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	ContractName string
}

// ShowDeploymentResult contains a single deployment
type ShowDeploymentResult struct {
	Network    *config.Network
	Deployment *models.DeploymentRecord
}

// ShowDeployment is the use case for showing deployment details
type ShowDeployment struct {
	config *config.RuntimeConfig
	ledger DeploymentLedger
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, ledger DeploymentLedger) *ShowDeployment {
	return &ShowDeployment{
		config: cfg,
		ledger: ledger,
	}
}

// Run executes the show deployment use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*ShowDeploymentResult, error) {
	if uc.config.Network == nil {
		return nil, domain.ErrNoNetwork
	}
	if params.ContractName == "" {
		return nil, fmt.Errorf("contract name is required")
	}

	deployment, err := uc.ledger.Get(ctx, uc.config.Network, params.ContractName)
	if err != nil {
		return nil, fmt.Errorf("%s on %s: %w", params.ContractName, uc.config.Network.Name, err)
	}

	return &ShowDeploymentResult{
		Network:    uc.config.Network,
		Deployment: deployment,
	}, nil
}
