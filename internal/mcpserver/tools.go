package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/taskops/taskboard/internal/core/task"
)

// Tool names form the fixed operation catalog.
const (
	ToolAddTask    = "add_task"
	ToolListTasks  = "list_tasks"
	ToolMoveTask   = "move_task"
	ToolDeleteTask = "delete_task"
)

func statusValues() []string {
	values := make([]string, 0, len(task.Statuses))
	for _, s := range task.Statuses {
		values = append(values, string(s))
	}
	return values
}

func addTaskTool() mcp.Tool {
	return mcp.NewTool(ToolAddTask,
		mcp.WithDescription("Add a new task to the tracker"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title (required)"),
		),
		mcp.WithString("description",
			mcp.Description("Task description (optional)"),
		),
		mcp.WithString("status",
			mcp.Description("Initial status (default: todo)"),
			mcp.Enum(statusValues()...),
		),
	)
}

func listTasksTool() mcp.Tool {
	return mcp.NewTool(ToolListTasks,
		mcp.WithDescription("List all tasks, optionally filtered by status"),
		mcp.WithString("status",
			mcp.Description("Filter by status (default: all)"),
			mcp.Enum(append(statusValues(), task.FilterAll)...),
		),
	)
}

func moveTaskTool() mcp.Tool {
	return mcp.NewTool(ToolMoveTask,
		mcp.WithDescription("Move a task to a different status column"),
		mcp.WithNumber("task_id",
			mcp.Required(),
			mcp.Description("ID of the task to move"),
		),
		mcp.WithString("new_status",
			mcp.Required(),
			mcp.Description("New status for the task"),
			mcp.Enum(statusValues()...),
		),
	)
}

func deleteTaskTool() mcp.Tool {
	return mcp.NewTool(ToolDeleteTask,
		mcp.WithDescription("Delete a task from the tracker"),
		mcp.WithNumber("task_id",
			mcp.Required(),
			mcp.Description("ID of the task to delete"),
		),
	)
}
