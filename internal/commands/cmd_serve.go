package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/taskops/taskboard/internal/mcpserver"
	"github.com/taskops/taskboard/internal/store/jsonfile"
	"github.com/urfave/cli/v3"
)

// ServeCmd implements the taskboard serve command.
type ServeCmd struct {
	flags   *Flags
	version string

	http        bool
	addr        string
	stateless   bool
	portFromEnv bool
}

// NewServeCmd creates a new serve command.
func NewServeCmd(flags *Flags, version string) *ServeCmd {
	return &ServeCmd{flags: flags, version: version}
}

// Register adds the serve command to the application.
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Serve the task board to MCP clients",
		UsageText: "taskboard serve [--http] [--addr <host:port>]",
		Description: `Serves the task board over the Model Context Protocol.

The default transport is stdio, which is how MCP clients launch the
server from their configuration. Logs never touch stdout in this mode.

With --http the server speaks streamable HTTP on a single endpoint
(default http://127.0.0.1:8000/mcp). Bind address, session handling,
and CORS come from the config file and can be overridden by flags.

Examples:
  taskboard serve                      # stdio, for MCP client configs
  taskboard serve --http               # streamable HTTP on 127.0.0.1:8000
  taskboard serve --http --addr 0.0.0.0:8000 --port-from-env`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

// Flags returns the serve flags so the root command can reuse them for
// its default action.
func (cmd *ServeCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "http",
			Usage:       "serve over streamable HTTP instead of stdio",
			Destination: &cmd.http,
		},
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP bind address (overrides config)",
			Destination: &cmd.addr,
		},
		&cli.BoolFlag{
			Name:        "stateless",
			Usage:       "disable HTTP session tracking (overrides config)",
			Destination: &cmd.stateless,
		},
		&cli.BoolFlag{
			Name:        "port-from-env",
			Usage:       "use $PORT as the HTTP port when set (overrides config)",
			Destination: &cmd.portFromEnv,
		},
	}
}

// Run serves MCP until the context is canceled or a signal arrives.
func (cmd *ServeCmd) Run(ctx context.Context, c *cli.Command) error {
	opts := cmd.transportOptions()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pick up edits made through the CLI or TUI while serving.
	watcher, err := jsonfile.NewWatcher(cmd.flags.Config.DataFilePath(), log.Logger)
	if err != nil {
		return fmt.Errorf("watch data file: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	go func() {
		for range watcher.Watch(ctx) {
			if err := cmd.flags.Board.Refresh(ctx); err != nil {
				log.Warn().Err(err).Msg("reload after data file change")
			}
		}
	}()

	srv := mcpserver.New(cmd.flags.Board, cmd.version, log.Logger)
	return mcpserver.Serve(ctx, srv, opts, log.Logger)
}

func (cmd *ServeCmd) transportOptions() mcpserver.TransportOptions {
	cfg := cmd.flags.Config

	opts := mcpserver.TransportOptions{
		HTTP:        cmd.http,
		Addr:        cfg.HTTP.Addr,
		Path:        cfg.HTTP.Path,
		Stateless:   cfg.HTTP.Stateless,
		PortFromEnv: cfg.HTTP.PortFromEnv,
		ForceAccept: cfg.HTTP.ForceAccept,
		CORSEnabled: cfg.HTTP.CORS.Enabled,
		CORSOrigins: cfg.HTTP.CORS.Origins,
	}

	if cmd.addr != "" {
		opts.Addr = cmd.addr
	}
	if cmd.stateless {
		opts.Stateless = true
	}
	if cmd.portFromEnv {
		opts.PortFromEnv = true
	}

	return opts
}
