package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{out: out}
}

// getRelativePath returns the path relative to the current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return relPath
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintf(r.out, "❌ No %s file found\n", getRelativePath(result.ConfigPath))
		fmt.Fprintln(r.out, FormatWarning("Without config, commands require an explicit --network flag"))
	} else {
		fmt.Fprintln(r.out, "📋 Current config:")
		fmt.Fprintf(r.out, "Namespace: %s\n", result.Config.Namespace)
		if result.Config.Network != "" {
			fmt.Fprintf(r.out, "Network:   %s\n", result.Config.Network)
		} else {
			fmt.Fprintf(r.out, "Network:   %s\n", "(not set)")
		}
		fmt.Fprintf(r.out, "\n📁 config file: %s\n", getRelativePath(result.ConfigPath))
	}

	fmt.Fprintln(r.out)
	return r.RenderNetworkChoices(result.Config.Network, result.Networks)
}

// RenderNetworkChoices lists the networks "config set network" accepts,
// marking the active one
func (r *ConfigRenderer) RenderNetworkChoices(active string, networks []string) error {
	if len(networks) == 0 {
		fmt.Fprintln(r.out, FormatWarning("No networks declared in deploy.toml"))
		return nil
	}
	fmt.Fprintln(r.out, "🌐 Networks in deploy.toml:")
	for _, name := range networks {
		marker := "  "
		if name == active {
			marker = color.New(color.FgGreen).Sprint("* ")
		}
		fmt.Fprintf(r.out, "  %s%s\n", marker, name)
	}
	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to: %s", result.Key, result.Value)))
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyNamespace:
		fmt.Fprintln(r.out, FormatSuccess("Reset namespace to: "+config.DefaultNamespace))
	case config.ConfigKeyNetwork:
		fmt.Fprintln(r.out, FormatSuccess("Removed network from config (will be required as flag)"))
	}
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
