package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Artifact is a compiled contract in the hardhat artifact format
type Artifact struct {
	Format           string          `json:"_format,omitempty"`
	ContractName     string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         hexutil.Bytes   `json:"bytecode"`
	DeployedBytecode hexutil.Bytes   `json:"deployedBytecode"`

	// Source is where the artifact was loaded from ("embedded" or a file path)
	Source string `json:"-"`
}

// ParsedABI parses the artifact's ABI
func (a *Artifact) ParsedABI() (*abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(a.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", a.ContractName, err)
	}
	return &parsed, nil
}

// BytecodeHash returns the keccak256 hash of the creation bytecode
func (a *Artifact) BytecodeHash() common.Hash {
	return crypto.Keccak256Hash(a.Bytecode)
}
