package task

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no task exists with the given ID.
	ErrNotFound = errors.New("task not found")
	// ErrTitleRequired is returned when a task is created with an empty title.
	ErrTitleRequired = errors.New("task title is required")
	// ErrInvalidStatus is returned when a status is outside the board enum.
	ErrInvalidStatus = errors.New("invalid task status")
)

// PersistError reports that a mutation was applied in memory but the
// snapshot write to the backing file failed. The store keeps the mutated
// state so callers can tell the user the change happened without being
// saved.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// FilterAll selects every task regardless of status.
const FilterAll = "all"

// ListFilter controls which tasks are returned by List.
type ListFilter struct {
	Status string // FilterAll or a specific Status value
}

// Matches reports whether a task with the given status passes the filter.
func (f ListFilter) Matches(s Status) bool {
	return f.Status == FilterAll || f.Status == string(s)
}

// Store defines the interface for task persistence.
//
// Every mutation persists a whole snapshot before returning. When the
// write fails the in-memory change is kept and the returned error is a
// *PersistError wrapping the cause.
type Store interface {
	// Load reads the persisted snapshot into memory. Calling it again
	// picks up writes made by other processes.
	Load(ctx context.Context) error

	// Create adds a task with a store-assigned ID.
	// Returns ErrTitleRequired when title is blank and ErrInvalidStatus
	// when status is outside the enum.
	Create(ctx context.Context, title, description string, status Status) (Task, error)

	// List returns tasks matching the filter in creation order.
	List(ctx context.Context, filter ListFilter) ([]Task, error)

	// SetStatus moves a task to a new status, returning the updated task
	// and the status it held before. Returns ErrNotFound if the task does
	// not exist and ErrInvalidStatus for a status outside the enum.
	SetStatus(ctx context.Context, id int64, status Status) (Task, Status, error)

	// Delete removes a task and returns it. Returns ErrNotFound if the
	// task does not exist. The ID counter is not rewound.
	Delete(ctx context.Context, id int64) (Task, error)
}
