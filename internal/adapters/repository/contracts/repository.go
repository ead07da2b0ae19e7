package contracts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/trebuchet-org/tokendeploy/contracts"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// ArtifactsDir is where hardhat writes compiled artifacts
const ArtifactsDir = "artifacts"

// Repository resolves compiled artifacts, preferring the project's hardhat
// output and falling back to the artifacts embedded in the binary
type Repository struct {
	projectRoot string
	log         *slog.Logger
	mu          sync.Mutex
	cache       map[string]*models.Artifact
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		projectRoot: cfg.ProjectRoot,
		log:         log,
		cache:       make(map[string]*models.Artifact),
	}
}

// Get returns the artifact for contractName
func (r *Repository) Get(ctx context.Context, contractName string) (*models.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if artifact, ok := r.cache[contractName]; ok {
		return artifact, nil
	}

	artifact, err := r.findLocal(contractName)
	if err != nil {
		return nil, err
	}
	if artifact == nil {
		artifact, err = contracts.Artifact(contractName)
		if err != nil {
			return nil, err
		}
	}

	r.log.Debug("loaded artifact", "contract", contractName, "source", artifact.Source)
	r.cache[contractName] = artifact
	return artifact, nil
}

// findLocal looks for <projectRoot>/artifacts/**/<contractName>.json. It
// returns nil without error when the project has no such artifact.
func (r *Repository) findLocal(contractName string) (*models.Artifact, error) {
	root := filepath.Join(r.projectRoot, ArtifactsDir)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	target := contractName + ".json"
	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == target {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return loadArtifact(matches[0])
	default:
		rel := make([]string, len(matches))
		for i, m := range matches {
			rel[i], _ = filepath.Rel(r.projectRoot, m)
		}
		return nil, fmt.Errorf("multiple artifacts named %s: %s", contractName, strings.Join(rel, ", "))
	}
}

func loadArtifact(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if len(artifact.Bytecode) == 0 {
		return nil, errors.New("artifact " + path + " has no bytecode (abstract contract or interface?)")
	}
	artifact.Source = path
	return &artifact, nil
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
