package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot    string
	DeploymentsDir string

	// Context settings
	Namespace string   // Selects the named-account mapping
	Network   *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Resolved configurations
	Project *ProjectConfig
}

// Network represents network configuration
type Network struct {
	Name          string `json:"name"`
	ChainID       uint64 `json:"chainId"` // 0 until verified against the node
	RPCURL        string `json:"rpcUrl"`
	Live          bool   `json:"live"`
	Confirmations uint64 `json:"confirmations"`
	ExplorerURL   string `json:"explorerUrl,omitempty"`
}
