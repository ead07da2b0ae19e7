package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// TasksRenderer renders registered deployment tasks
type TasksRenderer struct {
	out  io.Writer
	json bool
}

// NewTasksRenderer creates a new tasks renderer
func NewTasksRenderer(out io.Writer, json bool) *TasksRenderer {
	return &TasksRenderer{out: out, json: json}
}

type taskView struct {
	ID           string   `json:"id"`
	Tags         []string `json:"tags"`
	Dependencies []string `json:"dependencies"`
}

// Render renders the task list
func (r *TasksRenderer) Render(result *usecase.ListTasksResult) error {
	if r.json {
		views := make([]taskView, 0, len(result.Tasks))
		for _, task := range result.Tasks {
			views = append(views, taskView{
				ID:           task.ID,
				Tags:         append([]string{}, task.Tags...),
				Dependencies: append([]string{}, task.Dependencies...),
			})
		}
		return writeJSON(r.out, views)
	}

	if len(result.Tasks) == 0 {
		fmt.Fprintln(r.out, "No tasks registered")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"Task", "Tags", "Depends On"})
	for _, task := range result.Tasks {
		deps := "-"
		if len(task.Dependencies) > 0 {
			deps = strings.Join(task.Dependencies, ", ")
		}
		t.AppendRow(table.Row{
			task.ID,
			color.New(color.FgCyan).Sprint(strings.Join(task.Tags, ", ")),
			deps,
		})
	}
	t.Render()
	return nil
}

var _ Renderer[*usecase.ListTasksResult] = (*TasksRenderer)(nil)
