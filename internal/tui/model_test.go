package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskops/taskboard/internal/board"
	"github.com/taskops/taskboard/internal/core/task"
	"github.com/taskops/taskboard/internal/store/jsonfile"
)

func newTestModel(t *testing.T) (Model, *board.Service) {
	t.Helper()

	store := jsonfile.NewTaskStore(filepath.Join(t.TempDir(), "tasks.json"))
	require.NoError(t, store.Load(context.Background()))

	svc := board.NewService(store, zerolog.Nop())
	return New(svc), svc
}

// step runs one message through Update and returns the updated model.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGroupTasks(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Title: "one", Status: task.StatusDone},
		{ID: 2, Title: "two", Status: task.StatusTodo},
		{ID: 3, Title: "three", Status: task.StatusTodo},
		{ID: 4, Title: "four", Status: task.StatusInProgress},
	}

	cols := groupTasks(tasks)

	require.Len(t, cols, 3)
	assert.Len(t, cols[0], 2)
	assert.Len(t, cols[1], 1)
	assert.Len(t, cols[2], 1)
	assert.Equal(t, int64(2), cols[0][0].ID)
	assert.Equal(t, int64(4), cols[1][0].ID)
	assert.Equal(t, int64(1), cols[2][0].ID)
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		from task.Status
		want task.Status
	}{
		{task.StatusTodo, task.StatusInProgress},
		{task.StatusInProgress, task.StatusDone},
		{task.StatusDone, task.StatusTodo},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			assert.Equal(t, tt.want, nextStatus(tt.from))
		})
	}
}

func TestModel_CursorNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	m.columns = groupTasks([]task.Task{
		{ID: 1, Title: "a", Status: task.StatusTodo},
		{ID: 2, Title: "b", Status: task.StatusTodo},
		{ID: 3, Title: "c", Status: task.StatusInProgress},
	})

	t.Run("left clamps at first column", func(t *testing.T) {
		next, _ := step(t, m, keyPress('h'))
		assert.Equal(t, 0, next.col)
	})

	t.Run("right moves and row clamps to shorter column", func(t *testing.T) {
		next, _ := step(t, m, keyPress('j'))
		assert.Equal(t, 1, next.row)

		next, _ = step(t, next, keyPress('l'))
		assert.Equal(t, 1, next.col)
		assert.Equal(t, 0, next.row)
	})

	t.Run("down clamps at last row", func(t *testing.T) {
		next, _ := step(t, m, keyPress('j'))
		next, _ = step(t, next, keyPress('j'))
		assert.Equal(t, 1, next.row)
	})

	t.Run("right clamps at last column", func(t *testing.T) {
		next := m
		for range 5 {
			next, _ = step(t, next, keyPress('l'))
		}
		assert.Equal(t, 2, next.col)
	})
}

func TestModel_SelectedTask(t *testing.T) {
	m, _ := newTestModel(t)

	_, ok := m.selectedTask()
	assert.False(t, ok, "empty board has no selection")

	m.columns = groupTasks([]task.Task{{ID: 7, Title: "a", Status: task.StatusTodo}})
	got, ok := m.selectedTask()
	require.True(t, ok)
	assert.Equal(t, int64(7), got.ID)
}

func TestModel_LoadAndMove(t *testing.T) {
	m, svc := newTestModel(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "Write docs", "", task.StatusTodo)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Ship release", "", task.StatusTodo)
	require.NoError(t, err)

	// Init loads the board
	msg := m.Init()()
	loaded, ok := msg.(tasksLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)

	m, _ = step(t, m, msg)
	require.Len(t, m.columns[0], 2)

	// Move the selected task to the next column
	_, cmd := step(t, m, keyPress('m'))
	require.NotNil(t, cmd)

	moved, ok := cmd().(taskMovedMsg)
	require.True(t, ok)
	require.NoError(t, moved.err)
	assert.Equal(t, task.StatusInProgress, moved.task.Status)
	assert.Equal(t, task.StatusTodo, moved.prev)

	m, reload := step(t, m, moved)
	assert.Equal(t, "moved #1 todo → in_progress", m.status)
	assert.False(t, m.statErr)
	require.NotNil(t, reload, "move triggers a reload")

	m, _ = step(t, m, reload())
	assert.Len(t, m.columns[0], 1)
	assert.Len(t, m.columns[1], 1)
}

func TestModel_Delete(t *testing.T) {
	m, svc := newTestModel(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "Throwaway", "", task.StatusTodo)
	require.NoError(t, err)

	m, _ = step(t, m, m.Init()())
	require.Len(t, m.columns[0], 1)

	_, cmd := step(t, m, keyPress('d'))
	require.NotNil(t, cmd)

	deleted, ok := cmd().(taskDeletedMsg)
	require.True(t, ok)
	require.NoError(t, deleted.err)

	m, reload := step(t, m, deleted)
	assert.Equal(t, "deleted #1 Throwaway", m.status)
	require.NotNil(t, reload)

	m, _ = step(t, m, reload())
	_, ok = m.selectedTask()
	assert.False(t, ok)
}

func TestModel_MoveOnEmptyBoardIsNoop(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := step(t, m, keyPress('m'))
	assert.Nil(t, cmd)

	_, cmd = step(t, m, keyPress('d'))
	assert.Nil(t, cmd)
}

func TestModel_LoadError(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = step(t, m, tasksLoadedMsg{err: errors.New("boom")})
	assert.Equal(t, "load failed: boom", m.status)
	assert.True(t, m.statErr)
}

func TestModel_LoadSeesExternalWrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")

	store := jsonfile.NewTaskStore(path)
	require.NoError(t, store.Load(ctx))
	m := New(board.NewService(store, zerolog.Nop()))

	// A second store on the same file stands in for another process.
	other := jsonfile.NewTaskStore(path)
	require.NoError(t, other.Load(ctx))
	otherSvc := board.NewService(other, zerolog.Nop())
	_, err := otherSvc.Add(ctx, "From elsewhere", "", task.StatusTodo)
	require.NoError(t, err)

	msg := m.loadTasks()()
	loaded, ok := msg.(tasksLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)
	require.Len(t, loaded.tasks, 1)
	assert.Equal(t, "From elsewhere", loaded.tasks[0].Title)
}

func TestModel_WatchReloadsOnChange(t *testing.T) {
	m, _ := newTestModel(t)

	ch := make(chan jsonfile.Event, 1)
	m = m.WithWatch(ch)

	ch <- jsonfile.Event{}
	msg := m.waitForChange()()
	require.IsType(t, boardChangedMsg{}, msg)

	_, cmd := step(t, m, msg)
	assert.NotNil(t, cmd, "change triggers a reload")

	close(ch)
	assert.Nil(t, m.waitForChange()(), "closed channel stops the wait loop")
}

func TestModel_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = step(t, m, keyPress('?'))
	assert.True(t, m.help.ShowAll)

	m, _ = step(t, m, keyPress('?'))
	assert.False(t, m.help.ShowAll)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := step(t, m, keyPress('q'))
	require.NotNil(t, cmd)
	assert.True(t, next.quitting)
	assert.Empty(t, next.View())
}

func TestModel_View(t *testing.T) {
	m, svc := newTestModel(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "Write docs", "", task.StatusTodo)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Review PR", "", task.StatusInProgress)
	require.NoError(t, err)

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = step(t, m, m.loadTasks()())

	view := m.View()
	assert.Contains(t, view, "Task Board")
	assert.Contains(t, view, "Todo (1)")
	assert.Contains(t, view, "In Progress (1)")
	assert.Contains(t, view, "Done (0)")
	assert.Contains(t, view, "#1 Write docs")
	assert.Contains(t, view, "#2 Review PR")
	assert.Contains(t, view, "no tasks")
}
