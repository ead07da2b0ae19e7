package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

const defaultPollInterval = time.Second

// Deployer submits contract creations and records them in the ledger.
// A contract already recorded with the same bytecode and constructor
// arguments, and still present on chain, is reused.
type Deployer struct {
	dialer       Dialer
	artifacts    usecase.ArtifactRepository
	ledger       usecase.DeploymentLedger
	signers      usecase.SignerProvider
	log          *slog.Logger
	pollInterval time.Duration
}

// NewDeployer creates a new deployer
func NewDeployer(
	dialer Dialer,
	artifacts usecase.ArtifactRepository,
	ledger usecase.DeploymentLedger,
	signers usecase.SignerProvider,
	log *slog.Logger,
) *Deployer {
	return &Deployer{
		dialer:       dialer,
		artifacts:    artifacts,
		ledger:       ledger,
		signers:      signers,
		log:          log,
		pollInterval: defaultPollInterval,
	}
}

// Deploy deploys req.ContractName on network
func (d *Deployer) Deploy(ctx context.Context, network *config.Network, req models.DeploymentRequest) (*models.DeploymentRecord, error) {
	name := req.ContractName

	artifact, err := d.artifacts.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	parsed, err := artifact.ParsedABI()
	if err != nil {
		return nil, &domain.ConfigurationError{Stage: domain.StageConfig, Msg: "invalid artifact", Err: err}
	}

	args := req.ConstructorArgs
	if args == nil {
		args = []any{}
	}
	encodedArgs, err := parsed.Pack("", args...)
	if err != nil {
		return nil, &domain.ConfigurationError{
			Stage: domain.StageArgumentEncoding,
			Msg:   fmt.Sprintf("constructor arguments for %s do not match its signature", name),
			Err:   err,
		}
	}

	backend, err := d.dialer.Dial(ctx, network)
	if err != nil {
		return nil, err
	}

	bytecodeHash := artifact.BytecodeHash()
	if existing, err := d.reusable(ctx, backend, network, name, bytecodeHash, hexutil.Encode(encodedArgs)); err != nil {
		return nil, err
	} else if existing != nil {
		if req.Log {
			d.log.Info(fmt.Sprintf("reusing %q at %s", name, existing.Address.Hex()))
		}
		return existing, nil
	}

	opts, err := d.signers.TransactOpts(ctx, req.From, new(big.Int).SetUint64(network.ChainID))
	if err != nil {
		return nil, err
	}

	address, tx, _, err := bind.DeployContract(opts, *parsed, artifact.Bytecode, backend, args...)
	if err != nil {
		return nil, classifySubmissionError(err)
	}
	if req.Log {
		d.log.Info(fmt.Sprintf("deploying %q (tx: %s)...", name, tx.Hash().Hex()))
	}

	receipt, err := d.waitConfirmed(ctx, backend, tx, network.Confirmations)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, &domain.TransactionError{
			Kind:   domain.TxReverted,
			Stage:  domain.StageConfirmation,
			TxHash: tx.Hash(),
			Err:    fmt.Errorf("deployment of %s reverted in block %d", name, receipt.BlockNumber.Uint64()),
		}
	}

	record := &models.DeploymentRecord{
		ContractName:    name,
		Address:         address,
		TransactionHash: tx.Hash(),
		ABI:             artifact.ABI,
		Args:            args,
		ConstructorArgs: hexutil.Encode(encodedArgs),
		BytecodeHash:    bytecodeHash,
		Receipt: &models.ReceiptInfo{
			From:        req.From,
			BlockNumber: receipt.BlockNumber.Uint64(),
			BlockHash:   receipt.BlockHash,
			GasUsed:     receipt.GasUsed,
			Status:      receipt.Status,
		},
		DeployedAt: time.Now().UTC(),
	}

	if err := d.ledger.Save(ctx, network, record); err != nil {
		return nil, fmt.Errorf("%s deployed at %s but could not be recorded: %w", name, address.Hex(), err)
	}

	if req.Log {
		d.log.Info(fmt.Sprintf("deployed at %s with %d gas", address.Hex(), receipt.GasUsed))
	}
	return record, nil
}

// reusable returns the recorded deployment of name when it matches the
// artifact and arguments and still has code on chain
func (d *Deployer) reusable(ctx context.Context, backend Backend, network *config.Network, name string, bytecodeHash common.Hash, encodedArgs string) (*models.DeploymentRecord, error) {
	existing, err := d.ledger.Get(ctx, network, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if existing.BytecodeHash != bytecodeHash || existing.ConstructorArgs != encodedArgs {
		d.log.Debug("recorded deployment differs, redeploying", "contract", name, "address", existing.Address.Hex())
		return nil, nil
	}

	code, err := backend.CodeAt(ctx, existing.Address, nil)
	if err != nil {
		return nil, &domain.NetworkError{Stage: domain.StageConnection, Err: fmt.Errorf("failed to check code at %s: %w", existing.Address.Hex(), err)}
	}
	if len(code) == 0 {
		d.log.Debug("recorded deployment has no code, redeploying", "contract", name, "address", existing.Address.Hex())
		return nil, nil
	}

	existing.Reused = true
	return existing, nil
}

// waitConfirmed waits for tx to be mined and then for confirmations more blocks
func (d *Deployer) waitConfirmed(ctx context.Context, backend Backend, tx *types.Transaction, confirmations uint64) (*types.Receipt, error) {
	return waitConfirmed(ctx, backend, tx, confirmations, d.pollInterval)
}

func waitConfirmed(ctx context.Context, backend Backend, tx *types.Transaction, confirmations uint64, poll time.Duration) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, confirmationError(tx, err)
	}
	if confirmations == 0 {
		return receipt, nil
	}

	target := receipt.BlockNumber.Uint64() + confirmations
	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		head, err := backend.BlockNumber(ctx)
		if err == nil && head >= target {
			return receipt, nil
		}
		select {
		case <-ctx.Done():
			return nil, confirmationError(tx, ctx.Err())
		case <-ticker.C:
		}
	}
}

var _ usecase.Deployer = (*Deployer)(nil)
