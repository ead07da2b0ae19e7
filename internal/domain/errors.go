package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrArtifactNotFound is returned when no compiled artifact exists for a contract name
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrNetworkMismatch is returned when a ledger or node reports a different chain than configured
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrNoNetwork is returned when an operation needs a network and none was selected
	ErrNoNetwork = errors.New("no network selected (use --network)")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")
)

// Stage names the step of a deployment that produced an error.
type Stage string

const (
	StageConfig            Stage = "config"
	StageAccountResolution Stage = "account-resolution"
	StageArgumentEncoding  Stage = "argument-encoding"
	StageSigner            Stage = "signer"
	StageConnection        Stage = "connection"
	StageSubmission        Stage = "submission"
	StageConfirmation      Stage = "confirmation"
)

// ConfigurationError is returned when local configuration prevents an operation
// from starting. No transaction has been sent when it is returned.
type ConfigurationError struct {
	Stage Stage
	Msg   string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Stage, e.Msg, e.Err)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Stage, e.Msg)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Detail is the message without the error class and stage
func (e *ConfigurationError) Detail() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// NetworkError is returned when the node cannot be reached or stops answering.
// TxHash is set when a transaction was already broadcast.
type NetworkError struct {
	Stage  Stage
	TxHash common.Hash
	Err    error
}

func (e *NetworkError) Error() string {
	if e.TxHash != (common.Hash{}) {
		return fmt.Sprintf("network error (%s, tx %s): %v", e.Stage, e.TxHash.Hex(), e.Err)
	}
	return fmt.Sprintf("network error (%s): %v", e.Stage, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Detail is the message without the error class and stage
func (e *NetworkError) Detail() string {
	if e.TxHash != (common.Hash{}) {
		return fmt.Sprintf("%v (tx %s)", e.Err, e.TxHash.Hex())
	}
	return fmt.Sprint(e.Err)
}

// TxErrorKind classifies transaction failures
type TxErrorKind string

const (
	TxReverted          TxErrorKind = "reverted"
	TxInsufficientFunds TxErrorKind = "insufficient-funds"
	TxRejected          TxErrorKind = "rejected"
)

// TransactionError is returned when the node refuses a transaction or the
// transaction is mined with a failed status.
type TransactionError struct {
	Kind   TxErrorKind
	Stage  Stage
	TxHash common.Hash
	Err    error
}

func (e *TransactionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "transaction %s (%s)", e.Kind, e.Stage)
	if e.TxHash != (common.Hash{}) {
		fmt.Fprintf(&b, " tx %s", e.TxHash.Hex())
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *TransactionError) Unwrap() error { return e.Err }

// Detail is the message without the stage
func (e *TransactionError) Detail() string {
	var b strings.Builder
	fmt.Fprintf(&b, "transaction %s", e.Kind)
	if e.TxHash != (common.Hash{}) {
		fmt.Fprintf(&b, " (tx %s)", e.TxHash.Hex())
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// StageOf returns the deployment stage recorded in err, or "" when err
// carries none.
func StageOf(err error) Stage {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.Stage
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Stage
	}
	var txErr *TransactionError
	if errors.As(err, &txErr) {
		return txErr.Stage
	}
	return ""
}

// UnknownTagError is returned when a tag filter matches no registered task
type UnknownTagError struct {
	Tags        []string
	Suggestions []string
}

func (e *UnknownTagError) Error() string {
	msg := fmt.Sprintf("no tasks match tags: %s", strings.Join(e.Tags, ", "))
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}
