package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
)

// ProjectFile is the name of the project configuration file
const ProjectFile = "deploy.toml"

// LoadProjectConfig loads .env files and parses deploy.toml in projectRoot.
// A missing deploy.toml yields an empty configuration.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	cfg := &config.ProjectConfig{}
	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		normalizeProjectConfig(cfg)
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}

	normalizeProjectConfig(cfg)
	expandProjectEnv(cfg)

	if err := validateProjectConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnvFiles loads .env files so ${VAR} references in deploy.toml resolve.
// Variables already set in the process environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

func normalizeProjectConfig(cfg *config.ProjectConfig) {
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
	if cfg.Accounts == nil {
		cfg.Accounts = make(map[string]config.AccountConfig)
	}
	if cfg.Namespace == nil {
		cfg.Namespace = make(map[string]config.NamespaceRoles)
	}
}

// expandProjectEnv expands environment variables in every string field that
// may hold a secret or an endpoint.
func expandProjectEnv(cfg *config.ProjectConfig) {
	for name, network := range cfg.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.Explorer = os.ExpandEnv(network.Explorer)
		cfg.Networks[name] = network
	}

	for name, acct := range cfg.Accounts {
		acct.PrivateKey = os.ExpandEnv(acct.PrivateKey)
		acct.Keystore = os.ExpandEnv(acct.Keystore)
		acct.Address = os.ExpandEnv(acct.Address)
		cfg.Accounts[name] = acct
	}
}

func validateProjectConfig(cfg *config.ProjectConfig) error {
	for name, acct := range cfg.Accounts {
		switch acct.Type {
		case config.AccountTypePrivateKey, config.AccountTypeKeystore, config.AccountTypeAddress:
		case "":
			return fmt.Errorf("account %q: type is required", name)
		default:
			return fmt.Errorf("account %q: unknown type %q (expected private_key, keystore or address)", name, acct.Type)
		}
	}

	for name, network := range cfg.Networks {
		if network.RPCURL == "" {
			return fmt.Errorf("network %q: rpc_url is required", name)
		}
	}

	return nil
}
