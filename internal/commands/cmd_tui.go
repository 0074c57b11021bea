package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/taskops/taskboard/internal/store/jsonfile"
	"github.com/taskops/taskboard/internal/tui"
)

// TuiCmd implements the taskboard tui command.
type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command.
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Interactive kanban board",
		UsageText: "taskboard tui",
		Description: `Opens the board in an interactive terminal UI.

Navigate with the arrow keys or h/j/k/l. Move the selected task to
the next column with m or enter, delete with d, reload with r, and
quit with q. Press ? for the full keymap.

The board reloads automatically when the data file changes, so tasks
added by a connected MCP client show up while the TUI is open.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	watcher, err := jsonfile.NewWatcher(cmd.flags.Config.DataFilePath(), log.Logger)
	if err != nil {
		return fmt.Errorf("watch data file: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	m := tui.New(cmd.flags.Board).WithWatch(watcher.Watch(ctx))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
