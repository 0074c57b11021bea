package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/taskops/taskboard/internal/core/task"
)

// TaskFile is the root JSON structure stored on disk. Task IDs appear as
// string keys so the file matches what MCP clients see in task listings.
type TaskFile struct {
	Tasks  map[string]task.Task `json:"tasks"`
	NextID int64                `json:"next_id"`
}

// TaskStore implements task.Store with an in-memory map snapshotted to a
// JSON file on every mutation.
type TaskStore struct {
	path   string
	mu     sync.RWMutex
	tasks  map[string]task.Task
	nextID int64
}

var _ task.Store = (*TaskStore)(nil)

// NewTaskStore creates a task store backed by the JSON file at path.
// Call Load before use.
func NewTaskStore(path string) *TaskStore {
	return &TaskStore{
		path:   path,
		tasks:  map[string]task.Task{},
		nextID: 1,
	}
}

// Load reads the snapshot file into memory. A missing or empty file
// yields an empty store. Malformed content is returned as an error so
// callers can refuse to start rather than silently overwrite data.
func (s *TaskStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.tasks = map[string]task.Task{}
			s.nextID = 1
			return nil
		}
		return err
	}

	if len(data) == 0 {
		s.tasks = map[string]task.Task{}
		s.nextID = 1
		return nil
	}

	var file TaskFile
	if err := json.Unmarshal(data, &file); err != nil {
		return err
	}

	s.tasks = file.Tasks
	if s.tasks == nil {
		s.tasks = map[string]task.Task{}
	}

	// Never hand out an ID at or below one already in the file, even when
	// the stored counter disagrees.
	s.nextID = file.NextID
	for _, t := range s.tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	if s.nextID < 1 {
		s.nextID = 1
	}

	return nil
}

// Create adds a task with the next free ID and persists the snapshot.
func (s *TaskStore) Create(ctx context.Context, title, description string, status task.Status) (task.Task, error) {
	if strings.TrimSpace(title) == "" {
		return task.Task{}, task.ErrTitleRequired
	}
	if !status.IsValid() {
		return task.Task{}, task.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := task.Task{
		ID:          s.nextID,
		Title:       title,
		Description: description,
		Status:      status,
	}
	s.tasks[key(t.ID)] = t
	s.nextID++

	if err := s.save(); err != nil {
		return t, &task.PersistError{Op: "create", Err: err}
	}
	return t, nil
}

// List returns tasks matching the filter, ordered by ID ascending. IDs
// are issued in creation order so this is creation order.
func (s *TaskStore) List(ctx context.Context, filter task.ListFilter) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Matches(t.Status) {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SetStatus moves a task to a new status and persists the snapshot.
func (s *TaskStore) SetStatus(ctx context.Context, id int64, status task.Status) (task.Task, task.Status, error) {
	if !status.IsValid() {
		return task.Task{}, "", task.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[key(id)]
	if !ok {
		return task.Task{}, "", task.ErrNotFound
	}

	prev := t.Status
	t.Status = status
	s.tasks[key(id)] = t

	if err := s.save(); err != nil {
		return t, prev, &task.PersistError{Op: "move", Err: err}
	}
	return t, prev, nil
}

// Delete removes a task and persists the snapshot. The ID counter is
// left alone so the ID is never reissued.
func (s *TaskStore) Delete(ctx context.Context, id int64) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[key(id)]
	if !ok {
		return task.Task{}, task.ErrNotFound
	}

	delete(s.tasks, key(id))

	if err := s.save(); err != nil {
		return t, &task.PersistError{Op: "delete", Err: err}
	}
	return t, nil
}

// save writes the whole snapshot to disk atomically. Callers hold the
// write lock.
func (s *TaskStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(TaskFile{Tasks: s.tasks, NextID: s.nextID}, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}
