package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// Backend is what the deployer and contract caller need from a node.
// *ethclient.Client and simulated.Client both satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Dialer connects to the node of a network
type Dialer interface {
	Dial(ctx context.Context, network *config.Network) (Backend, error)
}

// RPCDialer dials networks over JSON-RPC and keeps one client per network
type RPCDialer struct {
	log     *slog.Logger
	mu      sync.Mutex
	clients map[string]*ethclient.Client
}

// NewRPCDialer creates a new RPC dialer
func NewRPCDialer(log *slog.Logger) *RPCDialer {
	return &RPCDialer{
		log:     log,
		clients: make(map[string]*ethclient.Client),
	}
}

// Dial connects to network and verifies its chain ID. A network configured
// without a chain ID takes the one reported by the node.
func (d *RPCDialer) Dial(ctx context.Context, network *config.Network) (Backend, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if client, ok := d.clients[network.Name]; ok {
		return client, nil
	}

	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, &domain.NetworkError{Stage: domain.StageConnection, Err: fmt.Errorf("failed to connect to %s: %w", network.Name, err)}
	}

	if err := verifyChainID(ctx, client, network); err != nil {
		client.Close()
		return nil, err
	}

	d.log.Debug("connected", "network", network.Name, "chainId", network.ChainID)
	d.clients[network.Name] = client
	return client, nil
}

// ChainID queries the node of network without caching the connection
func (d *RPCDialer) ChainID(ctx context.Context, network *config.Network) (uint64, error) {
	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return 0, &domain.NetworkError{Stage: domain.StageConnection, Err: err}
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, &domain.NetworkError{Stage: domain.StageConnection, Err: err}
	}
	return chainID.Uint64(), nil
}

// Close closes all open connections
func (d *RPCDialer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for name, client := range d.clients {
		client.Close()
		delete(d.clients, name)
	}
}

func verifyChainID(ctx context.Context, backend Backend, network *config.Network) error {
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return &domain.NetworkError{Stage: domain.StageConnection, Err: fmt.Errorf("failed to get chain ID: %w", err)}
	}

	if network.ChainID == 0 {
		network.ChainID = chainID.Uint64()
		return nil
	}
	if chainID.Uint64() != network.ChainID {
		return &domain.ConfigurationError{
			Stage: domain.StageConnection,
			Msg:   fmt.Sprintf("%s is configured with chain ID %d but the node reports %d", network.Name, network.ChainID, chainID.Uint64()),
			Err:   domain.ErrNetworkMismatch,
		}
	}
	return nil
}

var _ usecase.ChainIDReader = (*RPCDialer)(nil)
