// Package contracts ships the compiled artifacts of the contracts this tool
// deploys, so a deploy works without a local hardhat build.
package contracts

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
)

// Source marks artifacts loaded from the binary
const Source = "embedded"

var (
	// artifactFS holds hardhat artifacts (hh-sol-artifact-1)
	//
	//go:embed artifacts/*.json
	artifactFS embed.FS
)

// Artifact returns the embedded artifact for contractName
func Artifact(contractName string) (*models.Artifact, error) {
	data, err := artifactFS.ReadFile(path.Join("artifacts", contractName+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, contractName)
		}
		return nil, err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse embedded artifact %s: %w", contractName, err)
	}
	if len(artifact.Bytecode) == 0 {
		return nil, fmt.Errorf("embedded artifact %s has no bytecode", contractName)
	}
	artifact.Source = Source
	return &artifact, nil
}

// Names lists the embedded contract names
func Names() []string {
	entries, err := artifactFS.ReadDir("artifacts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}
