package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/taskops/taskboard/internal/board"
	"github.com/taskops/taskboard/internal/core/task"
)

// Dispatcher routes tool invocations to the board service. Each operation
// decodes the untyped argument map into a typed struct before touching the
// store, and every user-facing failure comes back as an error-flagged tool
// result, never as a Go error.
type Dispatcher struct {
	svc *board.Service
	log zerolog.Logger
}

// NewDispatcher creates a Dispatcher over the board service.
func NewDispatcher(svc *board.Service, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		svc: svc,
		log: log.With().Str("component", "dispatcher").Logger(),
	}
}

// Dispatch executes one tool call by name.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	d.log.Debug().Ctx(ctx).Str("tool", name).Msg("dispatching tool call")

	switch name {
	case ToolAddTask:
		return d.addTask(ctx, args)
	case ToolListTasks:
		return d.listTasks(ctx, args)
	case ToolMoveTask:
		return d.moveTask(ctx, args)
	case ToolDeleteTask:
		return d.deleteTask(ctx, args)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("❌ Unknown tool: %s", name))
	}
}

type addArgs struct {
	title       string
	description string
	status      task.Status
}

func decodeAddArgs(args map[string]any) (addArgs, error) {
	title, err := stringArg(args, "title", true, "")
	if err != nil {
		return addArgs{}, err
	}

	description, err := stringArg(args, "description", false, "")
	if err != nil {
		return addArgs{}, err
	}

	status, err := statusArg(args, "status", task.StatusTodo)
	if err != nil {
		return addArgs{}, err
	}

	return addArgs{title: title, description: description, status: status}, nil
}

func (d *Dispatcher) addTask(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	in, err := decodeAddArgs(args)
	if err != nil {
		return invalidArgs(err)
	}

	t, err := d.svc.Add(ctx, in.title, in.description, in.status)
	if err != nil {
		var perr *task.PersistError
		switch {
		case errors.As(err, &perr):
			return mcp.NewToolResultError(fmt.Sprintf("⚠️ Task #%d created but not saved: %v", t.ID, perr.Err))
		case errors.Is(err, task.ErrTitleRequired):
			return invalidArgs(errors.New("title is required"))
		default:
			return d.internalError(ctx, ToolAddTask, err)
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"✅ Task created successfully!\n\nID: %d\nTitle: %s\nStatus: %s",
		t.ID, t.Title, t.Status,
	))
}

type listArgs struct {
	filter task.ListFilter
}

func decodeListArgs(args map[string]any) (listArgs, error) {
	status, err := stringArg(args, "status", false, task.FilterAll)
	if err != nil {
		return listArgs{}, err
	}

	if status != task.FilterAll && !task.Status(status).IsValid() {
		return listArgs{}, fmt.Errorf("status must be one of %s, all", strings.Join(statusValues(), ", "))
	}

	return listArgs{filter: task.ListFilter{Status: status}}, nil
}

func (d *Dispatcher) listTasks(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	in, err := decodeListArgs(args)
	if err != nil {
		return invalidArgs(err)
	}

	// The whole collection is needed regardless of filter: an empty store
	// and an empty filter result read differently to the caller.
	tasks, err := d.svc.List(ctx, task.ListFilter{Status: task.FilterAll})
	if err != nil {
		return d.internalError(ctx, ToolListTasks, err)
	}

	if len(tasks) == 0 {
		return mcp.NewToolResultText(board.EmptyBoard)
	}

	matched := 0
	for _, t := range tasks {
		if in.filter.Matches(t.Status) {
			matched++
		}
	}
	if matched == 0 {
		return mcp.NewToolResultText(board.EmptyFilter(in.filter.Status))
	}

	return mcp.NewToolResultText(board.Render(tasks, in.filter))
}

type moveArgs struct {
	id     int64
	status task.Status
}

func decodeMoveArgs(args map[string]any) (moveArgs, error) {
	id, err := intArg(args, "task_id")
	if err != nil {
		return moveArgs{}, err
	}

	status, err := requiredStatusArg(args, "new_status")
	if err != nil {
		return moveArgs{}, err
	}

	return moveArgs{id: id, status: status}, nil
}

func (d *Dispatcher) moveTask(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	in, err := decodeMoveArgs(args)
	if err != nil {
		return invalidArgs(err)
	}

	t, prev, err := d.svc.Move(ctx, in.id, in.status)
	if err != nil {
		var perr *task.PersistError
		switch {
		case errors.As(err, &perr):
			return mcp.NewToolResultError(fmt.Sprintf("⚠️ Task #%d moved but not saved: %v", in.id, perr.Err))
		case errors.Is(err, task.ErrNotFound):
			return notFound(in.id)
		default:
			return d.internalError(ctx, ToolMoveTask, err)
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"✅ Task #%d moved!\n\n%s\n%s → %s",
		t.ID, t.Title, prev.Label(), t.Status.Label(),
	))
}

type deleteArgs struct {
	id int64
}

func decodeDeleteArgs(args map[string]any) (deleteArgs, error) {
	id, err := intArg(args, "task_id")
	if err != nil {
		return deleteArgs{}, err
	}
	return deleteArgs{id: id}, nil
}

func (d *Dispatcher) deleteTask(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	in, err := decodeDeleteArgs(args)
	if err != nil {
		return invalidArgs(err)
	}

	t, err := d.svc.Remove(ctx, in.id)
	if err != nil {
		var perr *task.PersistError
		switch {
		case errors.As(err, &perr):
			return mcp.NewToolResultError(fmt.Sprintf("⚠️ Task #%d deleted but not saved: %v", in.id, perr.Err))
		case errors.Is(err, task.ErrNotFound):
			return notFound(in.id)
		default:
			return d.internalError(ctx, ToolDeleteTask, err)
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"🗑️ Task deleted!\n\nID: #%d\nTitle: %s",
		t.ID, t.Title,
	))
}

func invalidArgs(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("❌ Invalid arguments: " + err.Error())
}

func notFound(id int64) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("❌ Task #%d not found", id))
}

func (d *Dispatcher) internalError(ctx context.Context, tool string, err error) *mcp.CallToolResult {
	d.log.Error().Ctx(ctx).Err(err).Str("tool", tool).Msg("tool call failed")
	return mcp.NewToolResultError(fmt.Sprintf("❌ %s failed: %v", tool, err))
}

func stringArg(args map[string]any, key string, required bool, fallback string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("%s is required", key)
		}
		return fallback, nil
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return s, nil
}

func statusArg(args map[string]any, key string, fallback task.Status) (task.Status, error) {
	s, err := stringArg(args, key, false, string(fallback))
	if err != nil {
		return "", err
	}

	status := task.Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%s must be one of %s", key, strings.Join(statusValues(), ", "))
	}
	return status, nil
}

func requiredStatusArg(args map[string]any, key string) (task.Status, error) {
	s, err := stringArg(args, key, true, "")
	if err != nil {
		return "", err
	}

	status := task.Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%s must be one of %s", key, strings.Join(statusValues(), ", "))
	}
	return status, nil
}

// intArg accepts the numeric forms JSON decoding can produce and requires
// the value to be integral.
func intArg(args map[string]any, key string) (int64, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%s is required", key)
	}

	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%s must be an integer", key)
	}
}
