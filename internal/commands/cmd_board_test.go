package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestBoardCmd_Plain(t *testing.T) {
	flags := newTestFlags(t)

	var buf bytes.Buffer
	app := &cli.Command{
		Name:   "taskboard",
		Writer: &buf,
	}
	NewTaskCmd(flags).Register(app)
	NewBoardCmd(flags).Register(app)
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, []string{"taskboard", "task", "add", "-t", "Write docs", "-d", "outline first"}))
	require.NoError(t, app.Run(ctx, []string{"taskboard", "task", "add", "-t", "Ship it", "-s", "done"}))
	buf.Reset()

	err := app.Run(ctx, []string{"taskboard", "board", "--style", "plain"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# 📋 Task Board")
	assert.Contains(t, out, "## 📝 Todo")
	assert.Contains(t, out, "- **#1** Write docs")
	assert.Contains(t, out, "_outline first_")
	assert.Contains(t, out, "## ✅ Done")
	assert.Contains(t, out, "- **#2** Ship it")
	assert.Contains(t, out, "_No tasks_", "empty in-progress column renders its placeholder")
}

func TestBoardCmd_EmptyBoard(t *testing.T) {
	flags := newTestFlags(t)

	var buf bytes.Buffer
	app := &cli.Command{
		Name:   "taskboard",
		Writer: &buf,
	}
	NewBoardCmd(flags).Register(app)

	err := app.Run(context.Background(), []string{"taskboard", "board", "--style", "plain"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# 📋 Task Board")
	assert.Contains(t, out, "## 🚀 In Progress")
	assert.Contains(t, out, "_No tasks_")
}

func TestBoardCmd_InvalidStyle(t *testing.T) {
	flags := newTestFlags(t)

	var buf bytes.Buffer
	app := &cli.Command{
		Name:   "taskboard",
		Writer: &buf,
	}
	NewBoardCmd(flags).Register(app)

	err := app.Run(context.Background(), []string{"taskboard", "board", "--style", "neon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid style "neon"`)
}

func TestBoardCmd_NonTTYWritesRawMarkdown(t *testing.T) {
	flags := newTestFlags(t)

	var buf bytes.Buffer
	app := &cli.Command{
		Name:   "taskboard",
		Writer: &buf,
	}
	NewTaskCmd(flags).Register(app)
	NewBoardCmd(flags).Register(app)
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, []string{"taskboard", "task", "add", "-t", "Write docs"}))
	buf.Reset()

	// Default style is auto, but test stdout is not a terminal.
	err := app.Run(ctx, []string{"taskboard", "board"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "- **#1** Write docs")
}
