package models

import (
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// DeploymentRequest is built fresh for every Deploy call and never persisted
type DeploymentRequest struct {
	ContractName    string
	ConstructorArgs []any
	From            common.Address
	Log             bool
}

// DeploymentRecord is the ledger entry for a deployed contract on one network
type DeploymentRecord struct {
	ContractName    string          `json:"contractName"`
	Address         common.Address  `json:"address"`
	TransactionHash common.Hash     `json:"transactionHash"`
	ABI             json.RawMessage `json:"abi"`
	Args            []any           `json:"args"`
	ConstructorArgs string          `json:"constructorArgs"` // hex encoded
	BytecodeHash    common.Hash     `json:"bytecodeHash"`
	Receipt         *ReceiptInfo    `json:"receipt,omitempty"`
	DeployedAt      time.Time       `json:"deployedAt"`

	// Runtime fields (not persisted)
	Reused bool `json:"-"` // true when an existing deployment was returned instead of a new one
}

// ReceiptInfo is the subset of the creation receipt kept in the ledger
type ReceiptInfo struct {
	From        common.Address `json:"from"`
	BlockNumber uint64         `json:"blockNumber"`
	BlockHash   common.Hash    `json:"blockHash"`
	GasUsed     uint64         `json:"gasUsed"`
	Status      uint64         `json:"status"`
}
