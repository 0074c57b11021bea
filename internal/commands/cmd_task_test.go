package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/taskops/taskboard/internal/board"
	"github.com/taskops/taskboard/internal/core/config"
	"github.com/taskops/taskboard/internal/core/task"
	"github.com/taskops/taskboard/internal/store/jsonfile"
)

func newTestFlags(t *testing.T) *Flags {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	store := jsonfile.NewTaskStore(cfg.DataFilePath())
	require.NoError(t, store.Load(context.Background()))

	return &Flags{
		Config: &cfg,
		Board:  board.NewService(store, zerolog.Nop()),
	}
}

// newTestApp registers the task commands on a fresh root command whose
// output is captured in the returned buffer.
func newTestApp(t *testing.T, flags *Flags) (*cli.Command, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	app := &cli.Command{
		Name:   "taskboard",
		Writer: &buf,
	}
	NewTaskCmd(flags).Register(app)
	return app, &buf
}

func TestTaskAddAndList(t *testing.T) {
	flags := newTestFlags(t)
	app, buf := newTestApp(t, flags)
	ctx := context.Background()

	err := app.Run(ctx, []string{"taskboard", "task", "add", "--title", "Write docs"})
	require.NoError(t, err)
	assert.Equal(t, "created #1\n", buf.String())

	buf.Reset()
	err = app.Run(ctx, []string{"taskboard", "task", "add", "-t", "Ship release", "-s", "in_progress"})
	require.NoError(t, err)
	assert.Equal(t, "created #2\n", buf.String())

	buf.Reset()
	err = app.Run(ctx, []string{"taskboard", "task", "list"})
	require.NoError(t, err)
	assert.Equal(t, "   1  todo         Write docs\n   2  in_progress  Ship release\n", buf.String())
}

func TestTaskAdd_BlankTitle(t *testing.T) {
	flags := newTestFlags(t)
	app, _ := newTestApp(t, flags)

	err := app.Run(context.Background(), []string{"taskboard", "task", "add", "--title", "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrTitleRequired)
}

func TestTaskAdd_InvalidStatus(t *testing.T) {
	flags := newTestFlags(t)
	app, _ := newTestApp(t, flags)

	err := app.Run(context.Background(), []string{"taskboard", "task", "add", "-t", "x", "-s", "archived"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid status "archived"`)
}

func TestTaskAdd_FromFile(t *testing.T) {
	flags := newTestFlags(t)
	app, buf := newTestApp(t, flags)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "task.json")
	input := `{"title": "Triage inbox", "description": "sort by urgency", "status": "in_progress"}`
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))

	err := app.Run(ctx, []string{"taskboard", "task", "add", "-f", path})
	require.NoError(t, err)
	assert.Equal(t, "created #1\n", buf.String())

	tasks, err := flags.Board.List(ctx, task.ListFilter{Status: task.FilterAll})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Triage inbox", tasks[0].Title)
	assert.Equal(t, "sort by urgency", tasks[0].Description)
	assert.Equal(t, task.StatusInProgress, tasks[0].Status)
}

func TestTaskList_JSON(t *testing.T) {
	flags := newTestFlags(t)
	app, buf := newTestApp(t, flags)
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, []string{"taskboard", "task", "add", "-t", "Write docs", "-d", "outline first"}))
	buf.Reset()

	err := app.Run(ctx, []string{"taskboard", "task", "list", "--json"})
	require.NoError(t, err)

	var got task.Task
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Write docs", got.Title)
	assert.Equal(t, "outline first", got.Description)
	assert.Equal(t, task.StatusTodo, got.Status)
}

func TestTaskList_StatusFilter(t *testing.T) {
	flags := newTestFlags(t)
	app, buf := newTestApp(t, flags)
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, []string{"taskboard", "task", "add", "-t", "a"}))
	require.NoError(t, app.Run(ctx, []string{"taskboard", "task", "add", "-t", "b", "-s", "done"}))
	buf.Reset()

	err := app.Run(ctx, []string{"taskboard", "task", "list", "--status", "done"})
	require.NoError(t, err)
	assert.Equal(t, "   2  done         b\n", buf.String())
}

func TestTaskList_InvalidStatus(t *testing.T) {
	flags := newTestFlags(t)
	app, _ := newTestApp(t, flags)

	err := app.Run(context.Background(), []string{"taskboard", "task", "list", "--status", "archived"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of todo, in_progress, done, all")
}

func TestTaskMove(t *testing.T) {
	flags := newTestFlags(t)
	app, buf := newTestApp(t, flags)
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, []string{"taskboard", "task", "add", "-t", "Write docs"}))
	buf.Reset()

	t.Run("moves to new column", func(t *testing.T) {
		err := app.Run(ctx, []string{"taskboard", "task", "move", "1", "done"})
		require.NoError(t, err)
		assert.Equal(t, "moved #1 todo → done\n", buf.String())
	})

	t.Run("unknown id", func(t *testing.T) {
		err := app.Run(ctx, []string{"taskboard", "task", "move", "9", "done"})
		require.Error(t, err)
		assert.Equal(t, "task 9 not found", err.Error())
	})

	t.Run("bad id", func(t *testing.T) {
		err := app.Run(ctx, []string{"taskboard", "task", "move", "abc", "done"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid task id "abc"`)
	})

	t.Run("bad status", func(t *testing.T) {
		err := app.Run(ctx, []string{"taskboard", "task", "move", "1", "archived"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid status "archived"`)
	})

	t.Run("missing args", func(t *testing.T) {
		err := app.Run(ctx, []string{"taskboard", "task", "move", "1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage: taskboard task move <id> <status>")
	})
}

func TestTaskDelete(t *testing.T) {
	flags := newTestFlags(t)
	app, buf := newTestApp(t, flags)
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, []string{"taskboard", "task", "add", "-t", "Write docs"}))
	buf.Reset()

	err := app.Run(ctx, []string{"taskboard", "task", "delete", "1"})
	require.NoError(t, err)
	assert.Equal(t, "deleted #1 Write docs\n", buf.String())

	err = app.Run(ctx, []string{"taskboard", "task", "delete", "1"})
	require.Error(t, err)
	assert.Equal(t, "task 1 not found", err.Error())

	// Deleted IDs are never reused
	buf.Reset()
	require.NoError(t, app.Run(ctx, []string{"taskboard", "task", "add", "-t", "again"}))
	assert.Equal(t, "created #2\n", buf.String())
}
