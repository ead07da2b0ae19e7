package tasks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
)

const maxSuggestions = 3

// Registry holds deployment tasks in registration order
type Registry struct {
	tasks []*domain.Task
	byID  map[string]*domain.Task
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*domain.Task)}
}

// NewDefaultRegistry creates a registry holding every task shipped with the binary
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(NewDeployZHMToken())
	return r
}

// Register adds a task to the registry
func (r *Registry) Register(task *domain.Task) error {
	if task == nil || task.ID == "" {
		return fmt.Errorf("task must have an ID")
	}
	if task.Func == nil {
		return fmt.Errorf("task %s has no function", task.ID)
	}
	if _, exists := r.byID[task.ID]; exists {
		return fmt.Errorf("task %s already registered", task.ID)
	}
	r.tasks = append(r.tasks, task)
	r.byID[task.ID] = task
	return nil
}

// MustRegister is like Register but panics on error
func (r *Registry) MustRegister(task *domain.Task) {
	if err := r.Register(task); err != nil {
		panic(err)
	}
}

// All returns every registered task in registration order
func (r *Registry) All() []*domain.Task {
	return append([]*domain.Task(nil), r.tasks...)
}

// Tags returns the sorted set of tags carried by registered tasks
func (r *Registry) Tags() []string {
	var tags []string
	for _, task := range r.tasks {
		tags = append(tags, task.Tags...)
	}
	tags = lo.Uniq(tags)
	sort.Strings(tags)
	return tags
}

// Select returns the tasks to run for the given tags. Without tags every task
// is selected. Dependencies of selected tasks are included and ordered first.
func (r *Registry) Select(tags []string) ([]*domain.Task, error) {
	tags = normalizeTags(tags)
	if len(tags) == 0 {
		return r.All(), nil
	}

	known := r.Tags()
	unknown := lo.Filter(tags, func(tag string, _ int) bool {
		return !lo.Contains(known, tag)
	})
	if len(unknown) > 0 {
		return nil, &domain.UnknownTagError{
			Tags:        unknown,
			Suggestions: suggestTags(unknown, known),
		}
	}

	var ordered []*domain.Task
	done := make(map[string]bool)
	visiting := make(map[string]bool)

	var visit func(task *domain.Task) error
	visit = func(task *domain.Task) error {
		if done[task.ID] {
			return nil
		}
		if visiting[task.ID] {
			return fmt.Errorf("dependency cycle through task %s", task.ID)
		}
		visiting[task.ID] = true

		for _, depTag := range task.Dependencies {
			deps := r.tasksWithTag(depTag)
			if len(deps) == 0 {
				return fmt.Errorf("task %s depends on tag %q which no task carries", task.ID, depTag)
			}
			for _, dep := range deps {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visiting[task.ID] = false
		done[task.ID] = true
		ordered = append(ordered, task)
		return nil
	}

	for _, task := range r.tasks {
		if !task.HasAnyTag(tags) {
			continue
		}
		if err := visit(task); err != nil {
			return nil, err
		}
	}

	return ordered, nil
}

func (r *Registry) tasksWithTag(tag string) []*domain.Task {
	return lo.Filter(r.tasks, func(task *domain.Task, _ int) bool {
		return task.HasTag(tag)
	})
}

// normalizeTags splits comma-separated entries, trims them and removes duplicates
func normalizeTags(tags []string) []string {
	var out []string
	for _, entry := range tags {
		for _, tag := range strings.Split(entry, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				out = append(out, tag)
			}
		}
	}
	return lo.Uniq(out)
}

// suggestTags returns registered tags that fuzzily match any of the unknown ones
func suggestTags(unknown, known []string) []string {
	var suggestions []string
	for _, tag := range unknown {
		for _, match := range fuzzy.Find(tag, known) {
			suggestions = append(suggestions, match.Str)
		}
		// Fall back to case-insensitive prefix matches, fuzzy matching needs
		// the whole pattern in order
		for _, candidate := range known {
			if strings.HasPrefix(strings.ToLower(candidate), strings.ToLower(tag)) {
				suggestions = append(suggestions, candidate)
			}
		}
	}
	suggestions = lo.Uniq(suggestions)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
