// Package mcpserver exposes the task board over the Model Context
// Protocol. It owns the tool catalog, the typed argument decoding, and
// the stdio/HTTP transports.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/taskops/taskboard/internal/board"
	"github.com/taskops/taskboard/pkg/logutils"
)

// Name identifies the server during the MCP handshake.
const Name = "taskboard"

const instructions = `taskboard tracks tasks on a three-column kanban board (todo, in_progress, done).
Use add_task to create tasks, list_tasks to view the board, move_task to change a task's column, and delete_task to remove one.
Task IDs are assigned by the tracker and shown in every listing.`

// New assembles the MCP server with the four task tools registered. Every
// handler funnels through the Dispatcher so routing, decoding, and result
// rendering live in one place.
func New(svc *board.Service, version string, log zerolog.Logger) *server.MCPServer {
	d := NewDispatcher(svc, log)

	s := server.NewMCPServer(
		Name,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	for _, tool := range []mcp.Tool{addTaskTool(), listTasksTool(), moveTaskTool(), deleteTaskTool()} {
		s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if cs := server.ClientSessionFromContext(ctx); cs != nil {
				ctx = logutils.WithSessionID(ctx, cs.SessionID())
			}
			return d.Dispatch(ctx, req.Params.Name, req.GetArguments()), nil
		})
	}

	return s
}
