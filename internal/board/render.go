package board

import (
	"fmt"
	"strings"

	"github.com/taskops/taskboard/internal/core/task"
)

// Render produces the kanban board markdown for a set of tasks. The
// filter decides which sections appear: FilterAll renders all three
// columns (empty ones marked "_No tasks_"), a specific status renders
// only that column.
//
// Callers that want the EmptyBoard or EmptyFilter messages instead of
// bare columns check those cases before rendering.
func Render(tasks []task.Task, filter task.ListFilter) string {
	var b strings.Builder
	b.WriteString("# 📋 Task Board\n\n")

	grouped := map[task.Status][]task.Task{}
	for _, t := range tasks {
		grouped[t.Status] = append(grouped[t.Status], t)
	}

	for _, status := range task.Statuses {
		if !filter.Matches(status) {
			continue
		}

		b.WriteString("## " + status.Label() + "\n")
		if group := grouped[status]; len(group) > 0 {
			for _, t := range group {
				fmt.Fprintf(&b, "- **#%d** %s\n", t.ID, t.Title)
				if t.Description != "" {
					fmt.Fprintf(&b, "  _%s_\n", t.Description)
				}
			}
		} else {
			b.WriteString("_No tasks_\n")
		}

		// The done column carries no trailing blank line.
		if status != task.StatusDone {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// EmptyBoard is the message shown when the store holds no tasks at all.
const EmptyBoard = "📋 No tasks found. Add your first task to get started!"

// EmptyFilter returns the message shown when a status filter matches
// nothing.
func EmptyFilter(filter string) string {
	return fmt.Sprintf("📋 No tasks found with status '%s'", filter)
}
