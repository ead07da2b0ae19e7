package blockchain

import (
	"context"
	"crypto/ecdsa"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/tokendeploy/contracts"
	"github.com/trebuchet-org/tokendeploy/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
)

const (
	simulatedChainID = 1337
	deployerKeyHex   = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
)

// testChain is a simulated chain with one funded account
type testChain struct {
	sim      *simulated.Backend
	key      *ecdsa.PrivateKey
	deployer common.Address
	network  *config.Network
	dialer   *staticDialer
	signers  *keySigners
	ledger   *deployments.FileRepository
}

// newTestChain starts a simulated chain. When mine is set, blocks are
// committed in the background so receipts appear.
func newTestChain(t *testing.T, mine bool) *testChain {
	t.Helper()

	key, err := crypto.HexToECDSA(deployerKeyHex)
	require.NoError(t, err)
	deployer := crypto.PubkeyToAddress(key.PublicKey)

	funds := new(big.Int).Exp(big.NewInt(10), big.NewInt(20), nil)
	sim := simulated.NewBackend(types.GenesisAlloc{deployer: {Balance: funds}})
	t.Cleanup(func() { _ = sim.Close() })

	chain := &testChain{
		sim:      sim,
		key:      key,
		deployer: deployer,
		network:  &config.Network{Name: "simulated", ChainID: simulatedChainID},
		dialer:   &staticDialer{backend: sim.Client()},
		signers:  &keySigners{keys: map[common.Address]*ecdsa.PrivateKey{deployer: key}},
		ledger:   deployments.NewFileRepository(&config.RuntimeConfig{DeploymentsDir: t.TempDir()}),
	}

	if mine {
		done := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticker := time.NewTicker(20 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					sim.Commit()
				}
			}
		}()
		t.Cleanup(func() {
			close(done)
			wg.Wait()
		})
	}

	return chain
}

func (c *testChain) newDeployer(log *slog.Logger) *Deployer {
	d := NewDeployer(c.dialer, embeddedArtifacts{}, c.ledger, c.signers, log)
	d.pollInterval = 20 * time.Millisecond
	return d
}

func (c *testChain) caller() *ContractCaller {
	cc := NewContractCaller(c.dialer, c.signers, discardLogger())
	cc.pollInterval = 20 * time.Millisecond
	return cc
}

// staticDialer hands out one backend and counts dials
type staticDialer struct {
	backend Backend
	mu      sync.Mutex
	calls   int
}

func (d *staticDialer) Dial(ctx context.Context, network *config.Network) (Backend, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()

	if err := verifyChainID(ctx, d.backend, network); err != nil {
		return nil, err
	}
	return d.backend, nil
}

func (d *staticDialer) dials() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// keySigners signs with in-memory keys
type keySigners struct {
	keys map[common.Address]*ecdsa.PrivateKey
}

func (s *keySigners) TransactOpts(ctx context.Context, from common.Address, chainID *big.Int) (*bind.TransactOpts, error) {
	key, ok := s.keys[from]
	if !ok {
		return nil, &domain.ConfigurationError{Stage: domain.StageSigner, Msg: "no key for " + from.Hex()}
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// embeddedArtifacts serves the artifacts compiled into the binary
type embeddedArtifacts struct{}

func (embeddedArtifacts) Get(_ context.Context, name string) (*models.Artifact, error) {
	return contracts.Artifact(name)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
