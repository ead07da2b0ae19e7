package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
)

const (
	// DataDir holds local, uncommitted settings
	DataDir = ".tokendeploy"
	// DeploymentsDir holds the per-network deployment ledgers
	DeploymentsDir = "deployments"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DeploymentsDir: filepath.Join(projectRoot, DeploymentsDir),
		Namespace:      v.GetString("namespace"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
	}

	project, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}
	cfg.Project = project

	// Resolve network if specified
	if networkName := v.GetString("network"); networkName != "" {
		network, err := ResolveNetwork(project, networkName)
		if err != nil {
			return nil, err
		}
		cfg.Network = network
	}

	return cfg, nil
}

// ResolveNetwork looks up a network by name in the project configuration
func ResolveNetwork(project *config.ProjectConfig, networkName string) (*config.Network, error) {
	nc, exists := project.Networks[networkName]
	if !exists {
		available := NetworkNames(project)
		if len(available) == 0 {
			return nil, fmt.Errorf("network '%s' not found: no [networks] configured in %s", networkName, ProjectFile)
		}
		return nil, fmt.Errorf("network '%s' not found in %s (available: %s)", networkName, ProjectFile, strings.Join(available, ", "))
	}

	explorer := nc.Explorer
	if explorer == "" {
		explorer = defaultExplorerURL(nc.ChainID)
	}

	return &config.Network{
		Name:          networkName,
		ChainID:       nc.ChainID,
		RPCURL:        nc.RPCURL,
		Live:          nc.Live,
		Confirmations: nc.Confirmations,
		ExplorerURL:   explorer,
	}, nil
}

// NetworkNames returns the configured network names in sorted order
func NetworkNames(project *config.ProjectConfig) []string {
	names := make([]string, 0, len(project.Networks))
	for name := range project.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindProjectRoot walks up from current directory to find deploy.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a tokendeploy project (%s not found)", ProjectFile)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDir))

	// Set up environment variables
	v.SetEnvPrefix("TOKENDEPLOY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("namespace", "default")
	v.SetDefault("timeout", "10m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

// defaultExplorerURL returns the block explorer for well-known chains
func defaultExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 17000:
		return "https://holesky.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 56:
		return "https://bscscan.com"
	default:
		return ""
	}
}
