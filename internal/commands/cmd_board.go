package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/taskops/taskboard/internal/board"
	"github.com/taskops/taskboard/internal/core/config"
	"github.com/taskops/taskboard/internal/core/task"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// BoardCmd implements the taskboard board command.
type BoardCmd struct {
	flags *Flags

	style string
}

// NewBoardCmd creates a new board command.
func NewBoardCmd(flags *Flags) *BoardCmd {
	return &BoardCmd{flags: flags}
}

// Register adds the board command to the application.
func (cmd *BoardCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "board",
		Usage:     "Render the kanban board",
		UsageText: "taskboard board [--style <style>]",
		Description: `Renders the board as markdown, one section per status column.

Output is styled for the terminal when stdout is a TTY. Use
--style plain (or redirect output) for raw markdown.

Examples:
  taskboard board
  taskboard board --style plain > board.md`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "style",
				Usage:       "render style (auto, dark, light, plain)",
				Destination: &cmd.style,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *BoardCmd) run(ctx context.Context, c *cli.Command) error {
	style := cmd.flags.Config.Board.Style
	if cmd.style != "" {
		style = cmd.style
	}
	switch style {
	case config.StyleAuto, config.StyleDark, config.StyleLight, config.StylePlain:
	default:
		return fmt.Errorf("invalid style %q: must be one of auto, dark, light, plain", style)
	}

	all := task.ListFilter{Status: task.FilterAll}

	tasks, err := cmd.flags.Board.List(ctx, all)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	md := board.Render(tasks, all)

	if style == config.StylePlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		_, _ = fmt.Fprint(c.Root().Writer, md)
		return nil
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(renderWidth())}
	if style == config.StyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}

	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render board: %w", err)
	}

	_, _ = fmt.Fprint(c.Root().Writer, rendered)
	return nil
}

// renderWidth returns the word wrap width for the current terminal,
// defaulting to 80 when the size cannot be determined.
func renderWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	if w > 120 {
		return 120
	}
	return w
}
