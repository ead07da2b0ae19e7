package tasks

import (
	"context"

	"github.com/trebuchet-org/tokendeploy/internal/domain"
)

const (
	// ZHMTokenContract is the artifact name of the token contract
	ZHMTokenContract = "ZHMToken"

	// ZHMTokenTag selects the token deployment
	ZHMTokenTag = "ERC20ZHM202330552162"

	deployerRole = "deployer"
)

// DeployZHMTokenID identifies the token deployment task
const DeployZHMTokenID = "deploy_zhm_token"

// NewDeployZHMToken returns the registration record of the task that deploys
// the ZHMToken contract from the "deployer" named account with no
// constructor arguments. Each call returns a fresh record.
func NewDeployZHMToken() *domain.Task {
	return &domain.Task{
		ID:   DeployZHMTokenID,
		Tags: []string{ZHMTokenTag},
		Func: deployZHMToken,
	}
}

func deployZHMToken(ctx context.Context, env domain.Environment) error {
	accounts, err := env.NamedAccounts(ctx)
	if err != nil {
		return err
	}

	deployer, ok := accounts[deployerRole]
	if !ok {
		return &domain.ConfigurationError{
			Stage: domain.StageAccountResolution,
			Msg:   `named account "deployer" is not configured for this network`,
		}
	}

	_, err = env.Deploy(ctx, ZHMTokenContract, domain.DeployOptions{
		From: deployer,
		Args: []any{},
		Log:  true,
	})
	return err
}
