package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
)

// RemoveDeploymentParams contains parameters for removing a ledger entry
type RemoveDeploymentParams struct {
	ContractName string
	Force        bool // skip confirmation
}

// RemoveDeploymentResult contains the removed record
type RemoveDeploymentResult struct {
	Network   *config.Network
	Removed   *models.DeploymentRecord
	Cancelled bool
}

// RemoveDeployment deletes a deployment record from the ledger so the next
// run deploys the contract again. It never touches the chain.
type RemoveDeployment struct {
	config    *config.RuntimeConfig
	ledger    DeploymentLedger
	confirmer Confirmer
}

// NewRemoveDeployment creates a new RemoveDeployment use case
func NewRemoveDeployment(cfg *config.RuntimeConfig, ledger DeploymentLedger, confirmer Confirmer) *RemoveDeployment {
	return &RemoveDeployment{
		config:    cfg,
		ledger:    ledger,
		confirmer: confirmer,
	}
}

// Run executes the use case
func (uc *RemoveDeployment) Run(ctx context.Context, params RemoveDeploymentParams) (*RemoveDeploymentResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, domain.ErrNoNetwork
	}

	record, err := uc.ledger.Get(ctx, network, params.ContractName)
	if err != nil {
		return nil, fmt.Errorf("%s on %s: %w", params.ContractName, network.Name, err)
	}

	result := &RemoveDeploymentResult{Network: network}

	if !params.Force {
		if uc.config.NonInteractive {
			return nil, fmt.Errorf("refusing to delete %s without --force in non-interactive mode", params.ContractName)
		}
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Delete %s (%s) from the %s ledger", record.ContractName, record.Address.Hex(), network.Name))
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Cancelled = true
			return result, nil
		}
	}

	if err := uc.ledger.Delete(ctx, network, params.ContractName); err != nil {
		return nil, err
	}

	result.Removed = record
	return result, nil
}
