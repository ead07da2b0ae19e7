package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TokenInfo holds the ERC-20 metadata of a deployed token
type TokenInfo struct {
	Address     common.Address `json:"address"`
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	Decimals    uint8          `json:"decimals"`
	TotalSupply *big.Int       `json:"totalSupply"`
}

// TxResult summarizes a mined transaction
type TxResult struct {
	Method      string      `json:"method"`
	Hash        common.Hash `json:"hash"`
	BlockNumber uint64      `json:"blockNumber"`
	GasUsed     uint64      `json:"gasUsed"`
	Status      uint64      `json:"status"`
}
