package network

import (
	"strings"

	appconfig "github.com/trebuchet-org/tokendeploy/internal/config"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// Resolver resolves networks declared in the project configuration
type Resolver struct {
	project *config.ProjectConfig
}

// NewResolver creates a new network resolver
func NewResolver(cfg *config.RuntimeConfig) *Resolver {
	project := cfg.Project
	if project == nil {
		project = &config.ProjectConfig{}
	}
	return &Resolver{project: project}
}

// NetworkNames returns the configured network names in sorted order
func (r *Resolver) NetworkNames() []string {
	return appconfig.NetworkNames(r.project)
}

// ResolveNetwork resolves a network by name. An exact match wins; otherwise
// a single case-insensitive match is accepted.
func (r *Resolver) ResolveNetwork(name string) (*config.Network, error) {
	if _, ok := r.project.Networks[name]; !ok {
		var matches []string
		for _, candidate := range r.NetworkNames() {
			if strings.EqualFold(candidate, name) {
				matches = append(matches, candidate)
			}
		}
		if len(matches) == 1 {
			name = matches[0]
		}
	}
	return appconfig.ResolveNetwork(r.project, name)
}

var _ usecase.NetworkResolver = (*Resolver)(nil)
