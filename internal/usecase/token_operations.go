package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
)

// DefaultTokenContract is the ledger entry token commands operate on by default
const DefaultTokenContract = "ZHMToken"

// DefaultSignerRole is the named account that signs token transactions by default
const DefaultSignerRole = "deployer"

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// TokenTarget selects the token contract. Address, when set, overrides the
// ledger lookup of ContractName.
type TokenTarget struct {
	ContractName string
	Address      string
}

// TokenTransferParams contains parameters for state-changing token operations.
// Account fields accept a hex address or a named account role.
type TokenTransferParams struct {
	Token  TokenTarget
	Signer string // named role, defaults to "deployer"
	From   string // transferFrom only
	To     string // recipient or spender
	Amount string // base-10 integer in base units
}

// TokenOperations reads and writes the deployed ERC-20 token
type TokenOperations struct {
	config    *config.RuntimeConfig
	ledger    DeploymentLedger
	artifacts ArtifactRepository
	caller    ContractCaller
	accounts  NamedAccountResolver
	log       *slog.Logger
}

// NewTokenOperations creates a new TokenOperations use case
func NewTokenOperations(
	cfg *config.RuntimeConfig,
	ledger DeploymentLedger,
	artifacts ArtifactRepository,
	caller ContractCaller,
	accounts NamedAccountResolver,
	log *slog.Logger,
) *TokenOperations {
	return &TokenOperations{
		config:    cfg,
		ledger:    ledger,
		artifacts: artifacts,
		caller:    caller,
		accounts:  accounts,
		log:       log,
	}
}

// boundToken is a resolved token contract
type boundToken struct {
	network *config.Network
	address common.Address
	abi     *abi.ABI
}

// Info returns the token metadata
func (uc *TokenOperations) Info(ctx context.Context, target TokenTarget) (*models.TokenInfo, error) {
	token, err := uc.resolveToken(ctx, target)
	if err != nil {
		return nil, err
	}

	info := &models.TokenInfo{Address: token.address}
	if info.Name, err = callString(ctx, uc.caller, token, "name"); err != nil {
		return nil, err
	}
	if info.Symbol, err = callString(ctx, uc.caller, token, "symbol"); err != nil {
		return nil, err
	}
	out, err := uc.caller.Call(ctx, token.network, token.address, token.abi, "decimals")
	if err != nil {
		return nil, err
	}
	decimals, ok := firstOutput(out).(uint8)
	if !ok {
		return nil, fmt.Errorf("unexpected decimals output %T", firstOutput(out))
	}
	info.Decimals = decimals
	if info.TotalSupply, err = callBigInt(ctx, uc.caller, token, "totalSupply"); err != nil {
		return nil, err
	}

	return info, nil
}

// BalanceOf returns the balance of account
func (uc *TokenOperations) BalanceOf(ctx context.Context, target TokenTarget, account string) (*big.Int, error) {
	token, err := uc.resolveToken(ctx, target)
	if err != nil {
		return nil, err
	}
	addr, err := uc.resolveAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	uc.log.Debug("querying balance", "account", addr.Hex(), "contract", token.address.Hex())
	return callBigInt(ctx, uc.caller, token, "balanceOf", addr)
}

// Allowance returns how much spender may transfer on behalf of owner
func (uc *TokenOperations) Allowance(ctx context.Context, target TokenTarget, owner, spender string) (*big.Int, error) {
	token, err := uc.resolveToken(ctx, target)
	if err != nil {
		return nil, err
	}
	ownerAddr, err := uc.resolveAccount(ctx, owner)
	if err != nil {
		return nil, err
	}
	spenderAddr, err := uc.resolveAccount(ctx, spender)
	if err != nil {
		return nil, err
	}

	uc.log.Debug("querying allowance", "owner", ownerAddr.Hex(), "spender", spenderAddr.Hex(), "contract", token.address.Hex())
	return callBigInt(ctx, uc.caller, token, "allowance", ownerAddr, spenderAddr)
}

// Mint creates Amount tokens for To
func (uc *TokenOperations) Mint(ctx context.Context, params TokenTransferParams) (*models.TxResult, error) {
	return uc.transact(ctx, params, "mint", func(to common.Address, _ common.Address, amount *big.Int) []any {
		return []any{to, amount}
	})
}

// Transfer sends Amount tokens from the signer to To
func (uc *TokenOperations) Transfer(ctx context.Context, params TokenTransferParams) (*models.TxResult, error) {
	return uc.transact(ctx, params, "transfer", func(to common.Address, _ common.Address, amount *big.Int) []any {
		return []any{to, amount}
	})
}

// Approve lets To spend Amount of the signer's tokens
func (uc *TokenOperations) Approve(ctx context.Context, params TokenTransferParams) (*models.TxResult, error) {
	return uc.transact(ctx, params, "approve", func(spender common.Address, _ common.Address, amount *big.Int) []any {
		return []any{spender, amount}
	})
}

// TransferFrom moves Amount tokens from From to To using the signer's allowance
func (uc *TokenOperations) TransferFrom(ctx context.Context, params TokenTransferParams) (*models.TxResult, error) {
	if params.From == "" {
		return nil, fmt.Errorf("transferFrom requires a source account")
	}
	return uc.transact(ctx, params, "transferFrom", func(to common.Address, from common.Address, amount *big.Int) []any {
		return []any{from, to, amount}
	})
}

// Burn destroys Amount of the signer's tokens
func (uc *TokenOperations) Burn(ctx context.Context, params TokenTransferParams) (*models.TxResult, error) {
	return uc.transact(ctx, params, "burn", func(_ common.Address, _ common.Address, amount *big.Int) []any {
		return []any{amount}
	})
}

type argsBuilder func(to, from common.Address, amount *big.Int) []any

func (uc *TokenOperations) transact(ctx context.Context, params TokenTransferParams, method string, build argsBuilder) (*models.TxResult, error) {
	amount, err := ParseAmount(params.Amount)
	if err != nil {
		return nil, err
	}

	token, err := uc.resolveToken(ctx, params.Token)
	if err != nil {
		return nil, err
	}

	signerRole := params.Signer
	if signerRole == "" {
		signerRole = DefaultSignerRole
	}
	signer, err := uc.resolveAccount(ctx, signerRole)
	if err != nil {
		return nil, err
	}

	var to, from common.Address
	if method != "burn" {
		if to, err = uc.resolveAccount(ctx, params.To); err != nil {
			return nil, err
		}
	}
	if params.From != "" {
		if from, err = uc.resolveAccount(ctx, params.From); err != nil {
			return nil, err
		}
	}

	uc.log.Info(fmt.Sprintf("%s %s tokens", method, amount.String()),
		"from", signer.Hex(),
		"to", to.Hex(),
		"contract", token.address.Hex(),
	)

	result, err := uc.caller.Transact(ctx, token.network, signer, token.address, token.abi, method, build(to, from, amount)...)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveToken finds the token address and ABI on the active network
func (uc *TokenOperations) resolveToken(ctx context.Context, target TokenTarget) (*boundToken, error) {
	network := uc.config.Network
	if network == nil {
		return nil, domain.ErrNoNetwork
	}

	name := target.ContractName
	if name == "" {
		name = DefaultTokenContract
	}

	token := &boundToken{network: network}

	var record *models.DeploymentRecord
	if target.Address != "" {
		if !common.IsHexAddress(target.Address) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, target.Address)
		}
		token.address = common.HexToAddress(target.Address)
	} else {
		var err error
		record, err = uc.ledger.Get(ctx, network, name)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%s is not deployed on %s (run deploy first or pass --address): %w", name, network.Name, err)
			}
			return nil, err
		}
		token.address = record.Address
	}

	if record != nil && len(record.ABI) > 0 {
		parsed, err := abi.JSON(strings.NewReader(string(record.ABI)))
		if err != nil {
			return nil, fmt.Errorf("failed to parse ABI recorded for %s: %w", name, err)
		}
		token.abi = &parsed
		return token, nil
	}

	artifact, err := uc.artifacts.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	token.abi, err = artifact.ParsedABI()
	if err != nil {
		return nil, err
	}
	return token, nil
}

// resolveAccount accepts a hex address or a named account role
func (uc *TokenOperations) resolveAccount(ctx context.Context, account string) (common.Address, error) {
	if account == "" {
		return common.Address{}, fmt.Errorf("account is required")
	}
	if common.IsHexAddress(account) {
		return common.HexToAddress(account), nil
	}
	if strings.HasPrefix(account, "0x") {
		return common.Address{}, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, account)
	}

	named, err := uc.accounts.NamedAccounts(ctx)
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := named[account]
	if !ok {
		return common.Address{}, &domain.ConfigurationError{
			Stage: domain.StageAccountResolution,
			Msg:   fmt.Sprintf("%q is neither an address nor a named account in namespace %s", account, uc.config.Namespace),
		}
	}
	return addr, nil
}

// ParseAmount parses a base-10 token amount in base units
func ParseAmount(s string) (*big.Int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return nil, fmt.Errorf("amount is required")
	}
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q: must be a base-10 integer", s)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount %q: must not be negative", s)
	}
	if amount.Cmp(maxUint256) > 0 {
		return nil, fmt.Errorf("invalid amount %q: exceeds uint256", s)
	}
	return amount, nil
}

func firstOutput(out []any) any {
	if len(out) == 0 {
		return nil
	}
	return out[0]
}

func callString(ctx context.Context, caller ContractCaller, token *boundToken, method string) (string, error) {
	out, err := caller.Call(ctx, token.network, token.address, token.abi, method)
	if err != nil {
		return "", err
	}
	s, ok := firstOutput(out).(string)
	if !ok {
		return "", fmt.Errorf("unexpected %s output %T", method, firstOutput(out))
	}
	return s, nil
}

func callBigInt(ctx context.Context, caller ContractCaller, token *boundToken, method string, args ...any) (*big.Int, error) {
	out, err := caller.Call(ctx, token.network, token.address, token.abi, method, args...)
	if err != nil {
		return nil, err
	}
	n, ok := firstOutput(out).(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected %s output %T", method, firstOutput(out))
	}
	return n, nil
}
