// Package tui implements the interactive kanban board.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskops/taskboard/internal/board"
	"github.com/taskops/taskboard/internal/core/task"
	"github.com/taskops/taskboard/internal/store/jsonfile"
)

// tasksLoadedMsg carries the result of a board load.
type tasksLoadedMsg struct {
	tasks []task.Task
	err   error
}

// boardChangedMsg reports that the snapshot file changed on disk.
type boardChangedMsg struct{}

// taskMovedMsg carries the result of a move operation.
type taskMovedMsg struct {
	task task.Task
	prev task.Status
	err  error
}

// taskDeletedMsg carries the result of a delete operation.
type taskDeletedMsg struct {
	task task.Task
	err  error
}

// Model is the main Bubble Tea model for the board.
type Model struct {
	svc   *board.Service
	watch <-chan jsonfile.Event

	// columns holds tasks grouped by status in board order.
	columns [][]task.Task
	col     int
	row     int

	width  int
	height int

	keys     keyMap
	help     help.Model
	status   string
	statErr  bool
	quitting bool
}

// New creates a board model backed by the given service.
func New(svc *board.Service) Model {
	return Model{
		svc:     svc,
		columns: make([][]task.Task, len(task.Statuses)),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// WithWatch makes the board reload itself whenever ch delivers a change
// notification. A nil channel disables watching.
func (m Model) WithWatch(ch <-chan jsonfile.Event) Model {
	m.watch = ch
	return m
}

// Init loads the board.
func (m Model) Init() tea.Cmd {
	if m.watch == nil {
		return m.loadTasks()
	}
	return tea.Batch(m.loadTasks(), m.waitForChange())
}

// loadTasks returns a command that re-reads the snapshot and loads
// every task, so changes from other processes show up too.
func (m Model) loadTasks() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.svc.Refresh(ctx); err != nil {
			return tasksLoadedMsg{err: err}
		}
		tasks, err := m.svc.List(ctx, task.ListFilter{Status: task.FilterAll})
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

// waitForChange returns a command that blocks until the watcher reports
// a change to the snapshot file.
func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.watch; !ok {
			return nil
		}
		return boardChangedMsg{}
	}
}

// moveTask returns a command that moves a task to the given status.
func (m Model) moveTask(id int64, status task.Status) tea.Cmd {
	return func() tea.Msg {
		moved, prev, err := m.svc.Move(context.Background(), id, status)
		return taskMovedMsg{task: moved, prev: prev, err: err}
	}
}

// deleteTask returns a command that deletes a task.
func (m Model) deleteTask(id int64) tea.Cmd {
	return func() tea.Msg {
		deleted, err := m.svc.Remove(context.Background(), id)
		return taskDeletedMsg{task: deleted, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tasksLoadedMsg:
		return m.handleTasksLoaded(msg)
	case boardChangedMsg:
		return m, tea.Batch(m.loadTasks(), m.waitForChange())
	case taskMovedMsg:
		return m.handleTaskMoved(msg)
	case taskDeletedMsg:
		return m.handleTaskDeleted(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTasksLoaded(msg tasksLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("load failed: %v", msg.err)
		m.statErr = true
		return m, nil
	}

	m.columns = groupTasks(msg.tasks)
	m = m.clampCursor()
	return m, nil
}

func (m Model) handleTaskMoved(msg taskMovedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("move failed: %v", msg.err)
		m.statErr = true
		return m, m.loadTasks()
	}

	m.status = fmt.Sprintf("moved #%d %s → %s", msg.task.ID, msg.prev, msg.task.Status)
	m.statErr = false
	return m, m.loadTasks()
}

func (m Model) handleTaskDeleted(msg taskDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("delete failed: %v", msg.err)
		m.statErr = true
		return m, m.loadTasks()
	}

	m.status = fmt.Sprintf("deleted #%d %s", msg.task.ID, msg.task.Title)
	m.statErr = false
	return m, m.loadTasks()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.col--
		m = m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.col++
		m = m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.row--
		m = m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.row++
		m = m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Move):
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, m.moveTask(t.ID, nextStatus(t.Status))

	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, m.deleteTask(t.ID)

	case key.Matches(msg, m.keys.Reload):
		m.status = ""
		m.statErr = false
		return m, m.loadTasks()
	}

	return m, nil
}

// selectedTask returns the task under the cursor.
func (m Model) selectedTask() (task.Task, bool) {
	if m.col >= len(m.columns) {
		return task.Task{}, false
	}
	col := m.columns[m.col]
	if len(col) == 0 || m.row >= len(col) {
		return task.Task{}, false
	}
	return col[m.row], true
}

// clampCursor keeps the cursor inside the board after column or data changes.
func (m Model) clampCursor() Model {
	if m.col < 0 {
		m.col = 0
	}
	if m.col > len(m.columns)-1 {
		m.col = len(m.columns) - 1
	}
	n := len(m.columns[m.col])
	if m.row > n-1 {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	return m
}

// groupTasks splits tasks into per-status columns in board order.
func groupTasks(tasks []task.Task) [][]task.Task {
	cols := make([][]task.Task, len(task.Statuses))
	for _, t := range tasks {
		for i, status := range task.Statuses {
			if t.Status == status {
				cols[i] = append(cols[i], t)
				break
			}
		}
	}
	return cols
}

// nextStatus returns the column to the right, wrapping back to the first.
func nextStatus(s task.Status) task.Status {
	for i, status := range task.Statuses {
		if s == status {
			return task.Statuses[(i+1)%len(task.Statuses)]
		}
	}
	return task.Statuses[0]
}
