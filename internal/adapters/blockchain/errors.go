package blockchain

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
)

// classifySubmissionError maps an error from sending a transaction to the
// domain error taxonomy
func classifySubmissionError(err error) error {
	if isNetworkError(err) {
		return &domain.NetworkError{Stage: domain.StageSubmission, Err: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient funds"):
		return &domain.TransactionError{Kind: domain.TxInsufficientFunds, Stage: domain.StageSubmission, Err: err}
	case strings.Contains(msg, "execution reverted"):
		// gas estimation already ran the call
		return &domain.TransactionError{Kind: domain.TxReverted, Stage: domain.StageSubmission, Err: err}
	default:
		return &domain.TransactionError{Kind: domain.TxRejected, Stage: domain.StageSubmission, Err: err}
	}
}

// confirmationError wraps a failure while waiting for tx to be mined
func confirmationError(tx *types.Transaction, err error) error {
	return &domain.NetworkError{Stage: domain.StageConfirmation, TxHash: tx.Hash(), Err: err}
}

func isNetworkError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"connection refused", "no such host", "connection reset", "i/o timeout"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
