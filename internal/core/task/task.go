// Package task defines the task domain model for the kanban board.
package task

// Status represents the board column a task sits in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists all valid statuses in board order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// IsValid reports whether s is one of the three board statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label returns the display name used in board sections and move confirmations.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "📝 Todo"
	case StatusInProgress:
		return "🚀 In Progress"
	case StatusDone:
		return "✅ Done"
	}
	return string(s)
}

// Task represents a single tracked item on the board.
//
// ID and Title are immutable after creation; Status is the only field
// that changes over a task's lifetime.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}
