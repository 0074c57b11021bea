package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/taskops/taskboard/internal/core/task"
	"github.com/taskops/taskboard/pkg/iojson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// taskInput is the JSON shape accepted by "task add" from a file or stdin.
type taskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// TaskCmd implements the taskboard task command group.
type TaskCmd struct {
	flags *Flags

	// add flags
	addTitle       string
	addDescription string
	addStatus      string
	addReader      iojson.FileReader[taskInput]

	// list flags
	listStatus string
	listJSON   bool
}

// NewTaskCmd creates a new task command.
func NewTaskCmd(flags *Flags) *TaskCmd {
	return &TaskCmd{flags: flags}
}

// Register adds the task command to the application.
func (cmd *TaskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "task",
		Usage: "Manage tasks on the board",
		Description: `Task commands for working the board without an MCP client.

Tasks live in a JSON file under the data directory and move between
three columns: todo, in_progress, done.

Examples:
  taskboard task add --title "Ship release notes"
  taskboard task list --status in_progress
  taskboard task move 3 done
  taskboard task delete 3`,
		Commands: []*cli.Command{
			cmd.addCmd(),
			cmd.listCmd(),
			cmd.moveCmd(),
			cmd.deleteCmd(),
		},
	})

	return app
}

func (cmd *TaskCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a task to the board",
		UsageText: "taskboard task add [--title <title>] [--description <desc>] [--status <status>]",
		Description: `Adds a task to the board.

The task can be provided as flags, as JSON from a file or stdin, or
interactively. When --title is omitted on a terminal, a form prompts
for input.

Examples:
  taskboard task add --title "Fix flaky test" --status in_progress
  taskboard task add                                # interactive form
  echo '{"title": "Triage inbox"}' | taskboard task add
  taskboard task add -f task.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "task title",
				Destination: &cmd.addTitle,
			},
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "optional description",
				Destination: &cmd.addDescription,
			},
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "initial status (todo, in_progress, done)",
				Destination: &cmd.addStatus,
			},
			cmd.addReader.Flag(),
		},
		Action: cmd.runAdd,
	}
}

func (cmd *TaskCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List tasks",
		UsageText: "taskboard task list [--status <status>] [--json]",
		Description: `Lists tasks in creation order.

Defaults to all tasks. Use --status to show a single column and
--json for machine-readable JSON lines.

Examples:
  taskboard task list
  taskboard task list --status done
  taskboard task list --json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "filter by status (todo, in_progress, done, all)",
				Destination: &cmd.listStatus,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit tasks as JSON lines",
				Destination: &cmd.listJSON,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *TaskCmd) moveCmd() *cli.Command {
	return &cli.Command{
		Name:      "move",
		Aliases:   []string{"mv"},
		Usage:     "Move a task to another column",
		UsageText: "taskboard task move <id> <status>",
		Description: `Moves a task to a different status column.

Examples:
  taskboard task move 3 in_progress
  taskboard task move 3 done`,
		ShellComplete: TaskIDCompleter(cmd.flags),
		Action:        cmd.runMove,
	}
}

func (cmd *TaskCmd) deleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a task",
		UsageText: "taskboard task delete <id>",
		Description: `Deletes a task from the board. Its ID is never reused.

Examples:
  taskboard task delete 3`,
		ShellComplete: TaskIDCompleter(cmd.flags),
		Action:        cmd.runDelete,
	}
}

func (cmd *TaskCmd) runAdd(ctx context.Context, c *cli.Command) error {
	// JSON input is consulted only when no title flag is given.
	if cmd.addTitle == "" && cmd.addReader.Provided() {
		in, err := cmd.addReader.Read()
		if err != nil {
			return fmt.Errorf("read task input: %w", err)
		}
		cmd.addTitle = in.Title
		if cmd.addDescription == "" {
			cmd.addDescription = in.Description
		}
		if cmd.addStatus == "" {
			cmd.addStatus = in.Status
		}
	}

	// Show interactive form if title not provided via flag or input
	if cmd.addTitle == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no title provided; use --title or pipe JSON input")
		}
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	status := task.StatusTodo
	if cmd.addStatus != "" {
		var err error
		status, err = parseStatus(cmd.addStatus)
		if err != nil {
			return err
		}
	}

	t, err := cmd.flags.Board.Add(ctx, cmd.addTitle, cmd.addDescription, status)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "created #%d\n", t.ID)
	return nil
}

func (cmd *TaskCmd) runList(ctx context.Context, c *cli.Command) error {
	filter := task.ListFilter{Status: task.FilterAll}

	if cmd.listStatus != "" && cmd.listStatus != task.FilterAll {
		status, err := parseStatus(cmd.listStatus)
		if err != nil {
			return fmt.Errorf("invalid status %q: must be one of todo, in_progress, done, all", cmd.listStatus)
		}
		filter.Status = string(status)
	}

	tasks, err := cmd.flags.Board.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	if cmd.listJSON {
		for _, t := range tasks {
			if err := iojson.WriteLine(c.Root().Writer, t); err != nil {
				return err
			}
		}
		return nil
	}

	for _, t := range tasks {
		_, _ = fmt.Fprintf(c.Root().Writer, "%4d  %-11s  %s\n", t.ID, t.Status, t.Title)
	}

	return nil
}

func (cmd *TaskCmd) runMove(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: taskboard task move <id> <status>")
	}

	id, err := parseTaskID(c.Args().Get(0))
	if err != nil {
		return err
	}

	status, err := parseStatus(c.Args().Get(1))
	if err != nil {
		return err
	}

	updated, prev, err := cmd.flags.Board.Move(ctx, id, status)
	if errors.Is(err, task.ErrNotFound) {
		return fmt.Errorf("task %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("move task: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "moved #%d %s → %s\n", updated.ID, prev, updated.Status)
	return nil
}

func (cmd *TaskCmd) runDelete(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: taskboard task delete <id>")
	}

	id, err := parseTaskID(c.Args().Get(0))
	if err != nil {
		return err
	}

	deleted, err := cmd.flags.Board.Remove(ctx, id)
	if errors.Is(err, task.ErrNotFound) {
		return fmt.Errorf("task %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "deleted #%d %s\n", deleted.ID, deleted.Title)
	return nil
}

func (cmd *TaskCmd) runForm() error {
	cmd.addStatus = string(task.StatusTodo)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("Short summary of the task").
				Validate(validateTitle).
				Value(&cmd.addTitle),
			huh.NewText().
				Title("Description").
				Description("Optional details").
				Value(&cmd.addDescription),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Todo", string(task.StatusTodo)),
					huh.NewOption("In Progress", string(task.StatusInProgress)),
					huh.NewOption("Done", string(task.StatusDone)),
				).
				Value(&cmd.addStatus),
		),
	).Run()
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

func parseStatus(s string) (task.Status, error) {
	status := task.Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status %q: must be one of todo, in_progress, done", s)
	}
	return status, nil
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
