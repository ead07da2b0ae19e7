package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// Prompter asks the user for confirmations and task selections on the terminal
type Prompter struct {
	config *config.RuntimeConfig
}

// NewPrompter creates a new terminal prompter
func NewPrompter(cfg *config.RuntimeConfig) *Prompter {
	return &Prompter{config: cfg}
}

// Confirm asks a yes/no question. Declining or interrupting returns false.
func (p *Prompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if p.config.NonInteractive {
		return false, fmt.Errorf("confirmation not available in non-interactive mode")
	}

	confirm := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}
	if _, err := confirm.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return true, nil
}

// SelectTasks shows a multi-select list of tasks. All tasks start selected.
// The returned tasks keep their original order; quitting returns none.
func (p *Prompter) SelectTasks(ctx context.Context, tasks []*domain.Task, prompt string) ([]*domain.Task, error) {
	if p.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}
	if len(tasks) == 0 {
		return nil, nil
	}

	finalModel, err := tea.NewProgram(newTaskSelectModel(tasks, prompt), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, fmt.Errorf("task selection failed: %w", err)
	}

	m := finalModel.(taskSelectModel)
	if m.cancelled {
		return nil, nil
	}
	return m.chosen(), nil
}

// taskSelectModel is the bubbletea model for picking tasks
type taskSelectModel struct {
	tasks     []*domain.Task
	cursor    int
	selected  []bool
	title     string
	done      bool
	cancelled bool
}

func newTaskSelectModel(tasks []*domain.Task, title string) taskSelectModel {
	selected := make([]bool, len(tasks))
	for i := range selected {
		selected[i] = true
	}
	return taskSelectModel{tasks: tasks, selected: selected, title: title}
}

func (m taskSelectModel) Init() tea.Cmd {
	return nil
}

func (m taskSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case " ":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		all := len(m.chosen()) != len(m.tasks)
		for i := range m.selected {
			m.selected[i] = all
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m taskSelectModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprintf("%s\n\n", m.title))

	for i, task := range m.tasks {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}

		checkbox := color.New(color.FgWhite).Sprint("○")
		if m.selected[i] {
			checkbox = color.New(color.FgGreen).Sprint("✓")
		}

		tags := color.New(color.FgYellow).Sprintf("[%s]", strings.Join(task.Tags, ", "))
		b.WriteString(fmt.Sprintf("%s %s %s %s\n", cursor, checkbox, task.ID, tags))
	}

	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  Space: toggle  a: all  Enter: confirm  q: quit\n"))

	return b.String()
}

// chosen returns the selected tasks in order
func (m taskSelectModel) chosen() []*domain.Task {
	var out []*domain.Task
	for i, task := range m.tasks {
		if m.selected[i] {
			out = append(out, task)
		}
	}
	return out
}

var (
	_ usecase.Confirmer    = (*Prompter)(nil)
	_ usecase.TaskSelector = (*Prompter)(nil)
)
