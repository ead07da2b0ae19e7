package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Output formats for deployment listings
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var (
	addressStyle   = color.New(color.FgWhite)
	timestampStyle = color.New(color.Faint)
	contractStyle  = color.New(color.FgYellow, color.Bold)
)

// deploymentView is the serialized form of a ledger record
type deploymentView struct {
	Contract        string    `json:"contract" yaml:"contract"`
	Address         string    `json:"address" yaml:"address"`
	TransactionHash string    `json:"transactionHash" yaml:"transactionHash"`
	BlockNumber     uint64    `json:"blockNumber,omitempty" yaml:"blockNumber,omitempty"`
	GasUsed         uint64    `json:"gasUsed,omitempty" yaml:"gasUsed,omitempty"`
	Deployer        string    `json:"deployer,omitempty" yaml:"deployer,omitempty"`
	ConstructorArgs string    `json:"constructorArgs" yaml:"constructorArgs"`
	BytecodeHash    string    `json:"bytecodeHash" yaml:"bytecodeHash"`
	DeployedAt      time.Time `json:"deployedAt" yaml:"deployedAt"`
	Reused          bool      `json:"reused,omitempty" yaml:"reused,omitempty"`
}

func newDeploymentView(d *models.DeploymentRecord) deploymentView {
	view := deploymentView{
		Contract:        d.ContractName,
		Address:         d.Address.Hex(),
		TransactionHash: d.TransactionHash.Hex(),
		ConstructorArgs: d.ConstructorArgs,
		BytecodeHash:    d.BytecodeHash.Hex(),
		DeployedAt:      d.DeployedAt,
		Reused:          d.Reused,
	}
	if d.Receipt != nil {
		view.BlockNumber = d.Receipt.BlockNumber
		view.GasUsed = d.Receipt.GasUsed
		view.Deployer = d.Receipt.From.Hex()
	}
	return view
}

type deploymentListView struct {
	Network     string           `json:"network" yaml:"network"`
	Deployments []deploymentView `json:"deployments" yaml:"deployments"`
}

// DeploymentsRenderer renders ledger contents
type DeploymentsRenderer struct {
	out    io.Writer
	format string
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, format string) (*DeploymentsRenderer, error) {
	switch format {
	case "", FormatTable:
		format = FormatTable
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("invalid format %q (valid: table, json, yaml)", format)
	}
	return &DeploymentsRenderer{out: out, format: format}, nil
}

// Render renders a deployment list
func (r *DeploymentsRenderer) Render(result *usecase.DeploymentListResult) error {
	view := deploymentListView{Network: result.Network.Name, Deployments: []deploymentView{}}
	for _, d := range result.Deployments {
		view.Deployments = append(view.Deployments, newDeploymentView(d))
	}

	switch r.format {
	case FormatJSON:
		return writeJSON(r.out, view)
	case FormatYAML:
		return r.writeYAML(view)
	}

	if len(result.Deployments) == 0 {
		fmt.Fprintf(r.out, "No deployments found on %s\n", result.Network.Name)
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployments on %s\n", result.Network.Name)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"Contract", "Address", "Block", "Gas", "Deployed"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	for _, d := range result.Deployments {
		block, gas := "-", "-"
		if d.Receipt != nil {
			block = FormatNumber(d.Receipt.BlockNumber)
			gas = FormatNumber(d.Receipt.GasUsed)
		}
		t.AppendRow(table.Row{
			contractStyle.Sprint(d.ContractName),
			addressStyle.Sprint(d.Address.Hex()),
			block,
			gas,
			timestampStyle.Sprint(d.DeployedAt.Local().Format("2006-01-02 15:04:05")),
		})
	}
	t.Render()
	return nil
}

// RenderDeployment renders one ledger record in detail
func (r *DeploymentsRenderer) RenderDeployment(result *usecase.ShowDeploymentResult) error {
	view := newDeploymentView(result.Deployment)
	switch r.format {
	case FormatJSON:
		return writeJSON(r.out, view)
	case FormatYAML:
		return r.writeYAML(view)
	}

	d := result.Deployment
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", d.ContractName)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintf(r.out, "  Network: %s\n", result.Network.Name)
	fmt.Fprintf(r.out, "  Address: %s\n", d.Address.Hex())
	fmt.Fprintf(r.out, "  Transaction: %s\n", d.TransactionHash.Hex())
	if d.Receipt != nil {
		fmt.Fprintf(r.out, "  Deployer: %s\n", d.Receipt.From.Hex())
		fmt.Fprintf(r.out, "  Block: %s (%s)\n", FormatNumber(d.Receipt.BlockNumber), d.Receipt.BlockHash.Hex())
		fmt.Fprintf(r.out, "  Gas Used: %s\n", FormatNumber(d.Receipt.GasUsed))
	}
	fmt.Fprintf(r.out, "  Constructor Args: %s\n", d.ConstructorArgs)
	fmt.Fprintf(r.out, "  Bytecode Hash: %s\n", d.BytecodeHash.Hex())
	fmt.Fprintf(r.out, "  Deployed At: %s\n", timestampStyle.Sprint(d.DeployedAt.Format(time.RFC3339)))

	if explorer := result.Network.ExplorerURL; explorer != "" {
		fmt.Fprintf(r.out, "  Explorer: %s/address/%s\n", strings.TrimRight(explorer, "/"), d.Address.Hex())
	}
	return nil
}

// RenderRemoved renders the result of deleting a ledger entry
func (r *DeploymentsRenderer) RenderRemoved(result *usecase.RemoveDeploymentResult) error {
	if result.Cancelled {
		fmt.Fprintln(r.out, FormatWarning("Removal cancelled"))
		return nil
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Removed %s (%s) from the %s ledger",
		result.Removed.ContractName, result.Removed.Address.Hex(), result.Network.Name)))
	return nil
}

func (r *DeploymentsRenderer) writeYAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

var _ Renderer[*usecase.DeploymentListResult] = (*DeploymentsRenderer)(nil)
