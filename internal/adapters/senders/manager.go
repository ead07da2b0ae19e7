package senders

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/samber/lo"
	appconfig "github.com/trebuchet-org/tokendeploy/internal/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// sender is a resolved account. key stays nil for watch-only accounts and
// for keystores until the first signature is needed.
type sender struct {
	name    string
	account config.AccountConfig
	address common.Address
	key     *ecdsa.PrivateKey
}

// Service resolves the named accounts of the active namespace and builds
// signers for them
type Service struct {
	cfg  *config.RuntimeConfig
	warn io.Writer

	mu      sync.Mutex
	loaded  bool
	roles   map[string]common.Address
	senders map[common.Address]*sender
}

// NewService creates a new sender service
func NewService(cfg *config.RuntimeConfig) *Service {
	return &Service{cfg: cfg, warn: os.Stderr}
}

// NamedAccounts returns the role → address map of the active namespace
func (s *Service) NamedAccounts(ctx context.Context) (map[string]common.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	roles := make(map[string]common.Address, len(s.roles))
	for role, addr := range s.roles {
		roles[role] = addr
	}
	return roles, nil
}

// TransactOpts returns a signer for from bound to chainID
func (s *Service) TransactOpts(ctx context.Context, from common.Address, chainID *big.Int) (*bind.TransactOpts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	snd, ok := s.senders[from]
	if !ok {
		return nil, &domain.ConfigurationError{
			Stage: domain.StageSigner,
			Msg:   fmt.Sprintf("no account configured for %s", from.Hex()),
		}
	}

	if snd.key == nil {
		key, err := s.unlock(snd)
		if err != nil {
			return nil, &domain.ConfigurationError{
				Stage: domain.StageSigner,
				Msg:   fmt.Sprintf("account %q cannot sign", snd.name),
				Err:   err,
			}
		}
		snd.key = key
	}

	opts, err := bind.NewKeyedTransactorWithChainID(snd.key, chainID)
	if err != nil {
		return nil, &domain.ConfigurationError{Stage: domain.StageSigner, Msg: "failed to create transactor", Err: err}
	}
	opts.Context = ctx
	return opts, nil
}

func (s *Service) load() error {
	if s.loaded {
		return nil
	}

	project := s.cfg.Project
	if project == nil {
		project = &config.ProjectConfig{}
	}
	ns := appconfig.ResolveNamespace(project, s.cfg.Namespace, s.warn)

	roles := make(map[string]common.Address, len(ns.Accounts))
	senders := make(map[common.Address]*sender, len(ns.Accounts))
	roleNames := lo.Keys(ns.Accounts)
	sort.Strings(roleNames)
	for _, role := range roleNames {
		name := ns.AccountNames[role]
		snd, err := s.resolve(name, ns.Accounts[role])
		if err != nil {
			// A broken account only hides its own role
			fmt.Fprintf(s.warn, "Warning: namespace %q role %q: account %q cannot be resolved, skipping: %v\n", ns.Name, role, name, err)
			continue
		}
		roles[role] = snd.address

		// Two roles may share an address; keep the account that can sign
		if existing, ok := senders[snd.address]; !ok || existing.account.Type == config.AccountTypeAddress {
			senders[snd.address] = snd
		}
	}

	s.roles = roles
	s.senders = senders
	s.loaded = true
	return nil
}

// resolve derives the address of an account without unlocking keystores
func (s *Service) resolve(name string, acct config.AccountConfig) (*sender, error) {
	snd := &sender{name: name, account: acct}

	switch acct.Type {
	case config.AccountTypePrivateKey:
		key, err := parsePrivateKey(acct.PrivateKey)
		if err != nil {
			return nil, err
		}
		snd.key = key
		snd.address = crypto.PubkeyToAddress(key.PublicKey)

	case config.AccountTypeKeystore:
		addr, err := keystoreAddress(s.keystorePath(acct))
		if err != nil {
			return nil, err
		}
		snd.address = addr

	case config.AccountTypeAddress:
		if !common.IsHexAddress(acct.Address) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, acct.Address)
		}
		snd.address = common.HexToAddress(acct.Address)

	default:
		return nil, fmt.Errorf("unsupported account type: %s", acct.Type)
	}

	if acct.Address != "" && acct.Type != config.AccountTypeAddress {
		if !common.IsHexAddress(acct.Address) || common.HexToAddress(acct.Address) != snd.address {
			return nil, fmt.Errorf("configured address %s does not match key address %s", acct.Address, snd.address.Hex())
		}
	}

	return snd, nil
}

// unlock loads the private key of a keystore account
func (s *Service) unlock(snd *sender) (*ecdsa.PrivateKey, error) {
	switch snd.account.Type {
	case config.AccountTypeAddress:
		return nil, fmt.Errorf("address accounts are watch-only")
	case config.AccountTypeKeystore:
		data, err := os.ReadFile(s.keystorePath(snd.account))
		if err != nil {
			return nil, err
		}
		password := ""
		if snd.account.PasswordEnv != "" {
			var ok bool
			if password, ok = os.LookupEnv(snd.account.PasswordEnv); !ok {
				return nil, fmt.Errorf("password variable %s is not set", snd.account.PasswordEnv)
			}
		}
		key, err := keystore.DecryptKey(data, password)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt keystore: %w", err)
		}
		return key.PrivateKey, nil
	default:
		return nil, fmt.Errorf("no key material")
	}
}

func (s *Service) keystorePath(acct config.AccountConfig) string {
	if filepath.IsAbs(acct.Keystore) {
		return acct.Keystore
	}
	return filepath.Join(s.cfg.ProjectRoot, acct.Keystore)
}

func parsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, fmt.Errorf("private_key is empty (is the environment variable set?)")
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// keystoreAddress reads the address field of a V3 keystore file
func keystoreAddress(path string) (common.Address, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read keystore: %w", err)
	}
	var header struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return common.Address{}, fmt.Errorf("failed to parse keystore %s: %w", path, err)
	}
	if !common.IsHexAddress(header.Address) {
		return common.Address{}, fmt.Errorf("keystore %s has no address", path)
	}
	return common.HexToAddress(header.Address), nil
}

var (
	_ usecase.NamedAccountResolver = (*Service)(nil)
	_ usecase.SignerProvider       = (*Service)(nil)
)
