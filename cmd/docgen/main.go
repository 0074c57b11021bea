// Command docgen generates CLI reference documentation from the taskboard
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/taskops/taskboard/internal/commands"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "taskboard",
		Usage:     "Kanban task tracker for MCP clients",
		UsageText: "taskboard [global options] command [command options]",
		Description: `Taskboard is a kanban task tracker that AI agents drive over the
Model Context Protocol.

Tasks move across three columns (todo, in_progress, done) and persist
to a JSON file in the data directory. The MCP server exposes add_task,
list_tasks, move_task, and delete_task tools over stdio or streamable
HTTP.

Run 'taskboard' with no arguments to serve MCP over stdio.
Run 'taskboard tui' to open the interactive board.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("TASKBOARD_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (defaults to <data-dir>/taskboard.log)",
				Sources: cli.EnvVars("TASKBOARD_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("TASKBOARD_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory",
				Sources: cli.EnvVars("TASKBOARD_DATA_DIR"),
				Value:   commands.DefaultDataDir(),
			},
		},
	}

	serveCmd := commands.NewServeCmd(flags, "dev")
	root = serveCmd.Register(root)
	root = commands.NewTaskCmd(flags).Register(root)
	root = commands.NewBoardCmd(flags).Register(root)
	root = commands.NewTuiCmd(flags).Register(root)
	root = commands.NewConfigCmd(flags).Register(root)
	root.Flags = append(root.Flags, serveCmd.Flags()...)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
