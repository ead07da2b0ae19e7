package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
)

// ResolveNamespace resolves a namespace's named accounts by walking up the
// dot-separated hierarchy and overlaying roles at each level.
// For example, resolving "production.eu" walks: default → production → production.eu.
// Roles that reference unknown accounts are skipped with a warning to warnWriter.
// Pass nil for warnWriter to use os.Stderr.
func ResolveNamespace(cfg *config.ProjectConfig, namespaceName string, warnWriter ...io.Writer) *config.ResolvedNamespace {
	w := resolveWarnWriter(warnWriter)

	if namespaceName == "" {
		namespaceName = "default"
	}

	roles := make(map[string]string)
	for _, ancestor := range buildNamespaceChain(namespaceName) {
		ns, exists := cfg.Namespace[ancestor]
		if !exists {
			continue
		}
		for role, account := range ns {
			roles[role] = account
		}
	}

	resolved := &config.ResolvedNamespace{
		Name:         namespaceName,
		AccountNames: make(map[string]string, len(roles)),
		Accounts:     make(map[string]config.AccountConfig, len(roles)),
	}
	for role, accountName := range roles {
		acct, exists := cfg.Accounts[accountName]
		if !exists {
			fmt.Fprintf(w, "Warning: namespace %q role %q references unknown account %q, skipping\n", namespaceName, role, accountName)
			continue
		}
		resolved.AccountNames[role] = accountName
		resolved.Accounts[role] = acct
	}

	return resolved
}

// resolveWarnWriter returns the first writer from the variadic args, or os.Stderr if none provided.
func resolveWarnWriter(writers []io.Writer) io.Writer {
	if len(writers) > 0 && writers[0] != nil {
		return writers[0]
	}
	return os.Stderr
}

// buildNamespaceChain returns the ordered list of namespace names to resolve,
// starting from "default" and adding each dot-separated prefix.
// For "production.eu.v2" it returns: ["default", "production", "production.eu", "production.eu.v2"]
func buildNamespaceChain(namespaceName string) []string {
	if namespaceName == "default" {
		return []string{"default"}
	}

	chain := []string{"default"}
	parts := strings.Split(namespaceName, ".")
	for i := range parts {
		chain = append(chain, strings.Join(parts[:i+1], "."))
	}
	return chain
}
