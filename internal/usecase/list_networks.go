package usecase

import (
	"context"
	"time"

	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
)

const networkCheckTimeout = 5 * time.Second

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Check queries each node for its chain ID
	Check bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Network     *config.Network
	LiveChainID uint64 // as reported by the node, 0 when not checked
	Error       error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver NetworkResolver
	checker  ChainIDReader
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver, checker ChainIDReader) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
		checker:  checker,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	names := uc.resolver.NetworkNames()

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		network, err := uc.resolver.ResolveNetwork(name)
		if err != nil {
			networks = append(networks, NetworkStatus{Network: &config.Network{Name: name}, Error: err})
			continue
		}

		status := NetworkStatus{Network: network}
		if params.Check {
			checkCtx, cancel := context.WithTimeout(ctx, networkCheckTimeout)
			chainID, err := uc.checker.ChainID(checkCtx, network)
			cancel()
			if err != nil {
				status.Error = err
			} else {
				status.LiveChainID = chainID
			}
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{Networks: networks}, nil
}
