package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	appconfig "github.com/trebuchet-org/tokendeploy/internal/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// LocalConfigFile is read by viper as the lowest-precedence settings source
const LocalConfigFile = "config.local.json"

// LocalConfigStore keeps LocalConfig as JSON under the project data dir
type LocalConfigStore struct {
	configPath string
}

// NewLocalConfigStore creates a new LocalConfigStore
func NewLocalConfigStore(cfg *config.RuntimeConfig) *LocalConfigStore {
	return &LocalConfigStore{
		configPath: filepath.Join(cfg.ProjectRoot, appconfig.DataDir, LocalConfigFile),
	}
}

// Exists checks if the config file exists
func (s *LocalConfigStore) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Load reads the configuration, returning defaults when the file is absent
func (s *LocalConfigStore) Load(ctx context.Context) (*config.LocalConfig, error) {
	data, err := os.ReadFile(s.configPath)
	if errors.Is(err, os.ErrNotExist) {
		return config.DefaultLocalConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var local config.LocalConfig
	if err := json.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.configPath, err)
	}
	if local.Namespace == "" {
		local.Namespace = config.DefaultNamespace
	}
	return &local, nil
}

// Save writes the configuration
func (s *LocalConfigStore) Save(ctx context.Context, local *config.LocalConfig) error {
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(local, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(s.configPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the path to the config file
func (s *LocalConfigStore) Path() string {
	return s.configPath
}

var _ usecase.LocalConfigStore = (*LocalConfigStore)(nil)
