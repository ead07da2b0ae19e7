package render

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// DeployRenderer renders the outcome of a deploy run
type DeployRenderer struct {
	out  io.Writer
	json bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, json bool) *DeployRenderer {
	return &DeployRenderer{out: out, json: json}
}

type taskOutcomeView struct {
	Task        string           `json:"task"`
	Status      string           `json:"status"`
	DurationMS  int64            `json:"durationMs"`
	Error       string           `json:"error,omitempty"`
	Deployments []deploymentView `json:"deployments"`
}

type deployRunView struct {
	Network   string            `json:"network"`
	ChainID   uint64            `json:"chainId"`
	Cancelled bool              `json:"cancelled"`
	Tasks     []taskOutcomeView `json:"tasks"`
}

// Render renders the run result
func (r *DeployRenderer) Render(result *usecase.RunDeployTasksResult) error {
	if r.json {
		return writeJSON(r.out, r.view(result))
	}

	if result.Cancelled {
		fmt.Fprintln(r.out, FormatWarning("Deployment cancelled"))
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "\nNetwork: %s", result.Network.Name)
	if result.Network.ChainID != 0 {
		color.New(color.Faint).Fprintf(r.out, " (chain %d)", result.Network.ChainID)
	}
	fmt.Fprintln(r.out)

	for _, outcome := range result.Outcomes {
		duration := outcome.Duration.Round(time.Millisecond)
		switch outcome.Status {
		case usecase.TaskSucceeded:
			fmt.Fprintf(r.out, "%s %s\n", FormatSuccess(outcome.TaskID), color.New(color.Faint).Sprintf("(%s)", duration))
		case usecase.TaskSkipped:
			color.New(color.FgWhite, color.Faint).Fprintf(r.out, "⊘ %s (skipped)\n", outcome.TaskID)
		case usecase.TaskFailed:
			color.New(color.FgRed).Fprintf(r.out, "✗ %s (%s)\n", outcome.TaskID, duration)
		}

		for _, d := range outcome.Deployments {
			state := color.New(color.FgGreen).Sprint("new")
			if d.Reused {
				state = color.New(color.FgYellow).Sprint("reused")
			}
			fmt.Fprintf(r.out, "    %-20s %s  %s", d.ContractName, d.Address.Hex(), state)
			if !d.Reused && d.Receipt != nil {
				fmt.Fprintf(r.out, "  %s gas", FormatNumber(d.Receipt.GasUsed))
			}
			fmt.Fprintln(r.out)
		}
	}

	if len(result.Outcomes) == 0 {
		fmt.Fprintln(r.out, "No tasks to run")
	}
	return nil
}

func (r *DeployRenderer) view(result *usecase.RunDeployTasksResult) deployRunView {
	view := deployRunView{Cancelled: result.Cancelled, Tasks: []taskOutcomeView{}}
	if result.Network != nil {
		view.Network = result.Network.Name
		view.ChainID = result.Network.ChainID
	}
	for _, outcome := range result.Outcomes {
		tv := taskOutcomeView{
			Task:        outcome.TaskID,
			Status:      string(outcome.Status),
			DurationMS:  outcome.Duration.Milliseconds(),
			Deployments: []deploymentView{},
		}
		if outcome.Err != nil {
			tv.Error = outcome.Err.Error()
		}
		for _, d := range outcome.Deployments {
			tv.Deployments = append(tv.Deployments, newDeploymentView(d))
		}
		view.Tasks = append(view.Tasks, tv)
	}
	return view
}

var _ Renderer[*usecase.RunDeployTasksResult] = (*DeployRenderer)(nil)
