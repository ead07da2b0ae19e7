package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

const (
	// ChainIDFile records which chain a network directory belongs to
	ChainIDFile = ".chainId"
	recordExt   = ".json"
)

// FileRepository stores one JSON file per deployed contract under
// <root>/<network>/, next to a .chainId marker
type FileRepository struct {
	rootDir string
	mu      sync.RWMutex
}

// NewFileRepository creates a ledger rooted at the configured deployments directory
func NewFileRepository(cfg *config.RuntimeConfig) *FileRepository {
	return &FileRepository{rootDir: cfg.DeploymentsDir}
}

// Get returns the record for contractName on network
func (r *FileRepository) Get(ctx context.Context, network *config.Network, contractName string) (*models.DeploymentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := validateName(contractName); err != nil {
		return nil, err
	}

	dir := r.networkDir(network)
	if err := checkChainID(dir, network); err != nil {
		return nil, err
	}

	record, err := loadRecord(filepath.Join(dir, contractName+recordExt))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no deployment of %s on %s", domain.ErrNotFound, contractName, network.Name)
		}
		return nil, err
	}
	return record, nil
}

// List returns every record on network in directory order
func (r *FileRepository) List(ctx context.Context, network *config.Network) ([]*models.DeploymentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dir := r.networkDir(network)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.DeploymentRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	if err := checkChainID(dir, network); err != nil {
		return nil, err
	}

	records := make([]*models.DeploymentRecord, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, recordExt) {
			continue
		}
		record, err := loadRecord(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Save writes record, creating the network directory and .chainId marker on first use
func (r *FileRepository) Save(ctx context.Context, network *config.Network, record *models.DeploymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := validateName(record.ContractName); err != nil {
		return err
	}

	dir := r.networkDir(network)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	if err := checkChainID(dir, network); err != nil {
		return err
	}
	if network.ChainID != 0 {
		if err := writeAtomic(filepath.Join(dir, ChainIDFile), []byte(strconv.FormatUint(network.ChainID, 10))); err != nil {
			return fmt.Errorf("failed to write %s: %w", ChainIDFile, err)
		}
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", record.ContractName, err)
	}
	return writeAtomic(filepath.Join(dir, record.ContractName+recordExt), data)
}

// Delete removes the record for contractName on network
func (r *FileRepository) Delete(ctx context.Context, network *config.Network, contractName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := validateName(contractName); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(r.networkDir(network), contractName+recordExt))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: no deployment of %s on %s", domain.ErrNotFound, contractName, network.Name)
	}
	return err
}

func (r *FileRepository) networkDir(network *config.Network) string {
	return filepath.Join(r.rootDir, network.Name)
}

// checkChainID fails when dir was written for another chain. Unknown chain
// IDs on either side are accepted.
func checkChainID(dir string, network *config.Network) error {
	data, err := os.ReadFile(filepath.Join(dir, ChainIDFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	recorded, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s in %s: %w", ChainIDFile, dir, err)
	}
	if network.ChainID != 0 && recorded != network.ChainID {
		return fmt.Errorf("%w: %s holds deployments for chain %d but %s is chain %d",
			domain.ErrNetworkMismatch, dir, recorded, network.Name, network.ChainID)
	}
	return nil
}

func loadRecord(path string) (*models.DeploymentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var record models.DeploymentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if record.ContractName == "" {
		record.ContractName = strings.TrimSuffix(filepath.Base(path), recordExt)
	}
	return &record, nil
}

// writeAtomic writes to a temp file first, then renames it into place
func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func validateName(contractName string) error {
	if contractName == "" || strings.ContainsAny(contractName, `/\`) || strings.HasPrefix(contractName, ".") {
		return fmt.Errorf("invalid contract name %q", contractName)
	}
	return nil
}

var _ usecase.DeploymentLedger = (*FileRepository)(nil)
