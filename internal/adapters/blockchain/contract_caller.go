package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// ContractCaller calls and transacts with deployed contracts through a
// go-ethereum BoundContract
type ContractCaller struct {
	dialer       Dialer
	signers      usecase.SignerProvider
	log          *slog.Logger
	pollInterval time.Duration
}

// NewContractCaller creates a new contract caller
func NewContractCaller(dialer Dialer, signers usecase.SignerProvider, log *slog.Logger) *ContractCaller {
	return &ContractCaller{
		dialer:       dialer,
		signers:      signers,
		log:          log,
		pollInterval: defaultPollInterval,
	}
}

// Call executes a read-only method and returns its decoded outputs
func (c *ContractCaller) Call(ctx context.Context, network *config.Network, contract common.Address, contractABI *abi.ABI, method string, args ...any) ([]any, error) {
	backend, err := c.dialer.Dial(ctx, network)
	if err != nil {
		return nil, err
	}

	bound := bind.NewBoundContract(contract, *contractABI, backend, backend, backend)
	var out []any
	if err := bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		if isNetworkError(err) {
			return nil, &domain.NetworkError{Stage: domain.StageConnection, Err: err}
		}
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}
	return out, nil
}

// Transact sends a state-changing call signed by from and waits for its receipt
func (c *ContractCaller) Transact(ctx context.Context, network *config.Network, from common.Address, contract common.Address, contractABI *abi.ABI, method string, args ...any) (*models.TxResult, error) {
	backend, err := c.dialer.Dial(ctx, network)
	if err != nil {
		return nil, err
	}

	opts, err := c.signers.TransactOpts(ctx, from, new(big.Int).SetUint64(network.ChainID))
	if err != nil {
		return nil, err
	}

	bound := bind.NewBoundContract(contract, *contractABI, backend, backend, backend)
	tx, err := bound.Transact(opts, method, args...)
	if err != nil {
		return nil, classifySubmissionError(err)
	}
	c.log.Debug("submitted", "method", method, "tx", tx.Hash().Hex())

	receipt, err := waitConfirmed(ctx, backend, tx, network.Confirmations, c.pollInterval)
	if err != nil {
		return nil, err
	}

	result := &models.TxResult{
		Method:      method,
		Hash:        tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		Status:      receipt.Status,
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return result, &domain.TransactionError{
			Kind:   domain.TxReverted,
			Stage:  domain.StageConfirmation,
			TxHash: tx.Hash(),
			Err:    fmt.Errorf("%s reverted in block %d", method, result.BlockNumber),
		}
	}
	return result, nil
}

var _ usecase.ContractCaller = (*ContractCaller)(nil)
