package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out  io.Writer
	json bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, json bool) *NetworksRenderer {
	return &NetworksRenderer{out: out, json: json}
}

type networkView struct {
	Name          string `json:"name"`
	RPCURL        string `json:"rpcUrl"`
	ChainID       uint64 `json:"chainId,omitempty"`
	LiveChainID   uint64 `json:"liveChainId,omitempty"`
	Live          bool   `json:"live"`
	Confirmations uint64 `json:"confirmations"`
	Error         string `json:"error,omitempty"`
}

// Render renders the list of networks
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if r.json {
		views := make([]networkView, 0, len(result.Networks))
		for _, status := range result.Networks {
			view := networkView{LiveChainID: status.LiveChainID}
			if status.Network != nil {
				view.Name = status.Network.Name
				view.RPCURL = status.Network.RPCURL
				view.ChainID = status.Network.ChainID
				view.Live = status.Network.Live
				view.Confirmations = status.Network.Confirmations
			}
			if status.Error != nil {
				view.Error = status.Error.Error()
			}
			views = append(views, view)
		}
		return writeJSON(r.out, views)
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in deploy.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, status := range result.Networks {
		if status.Error != nil {
			fmt.Fprintf(r.out, "  ❌ %s - Error: %v\n", networkName(status), status.Error)
			continue
		}

		network := status.Network
		line := fmt.Sprintf("  ✅ %s", network.Name)
		switch {
		case status.LiveChainID != 0:
			line += fmt.Sprintf(" - Chain ID: %d", status.LiveChainID)
		case network.ChainID != 0:
			line += fmt.Sprintf(" - Chain ID: %d", network.ChainID)
		}
		if network.Live {
			line += color.New(color.FgYellow).Sprint(" [live]")
		}
		if network.Confirmations > 0 {
			line += color.New(color.Faint).Sprintf(" (%d confirmations)", network.Confirmations)
		}
		fmt.Fprintln(r.out, line)
	}
	return nil
}

func networkName(status usecase.NetworkStatus) string {
	if status.Network == nil {
		return "?"
	}
	return status.Network.Name
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
