package mcpserver

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// TransportOptions selects and configures how the server is exposed. The
// zero value serves stdio.
type TransportOptions struct {
	// HTTP switches from stdio to the streamable HTTP transport.
	HTTP bool
	// Addr is the HTTP bind address, host:port.
	Addr string
	// Path is the single MCP endpoint path.
	Path string
	// Stateless disables server-side session tracking so any instance
	// behind a load balancer can answer any request.
	Stateless bool
	// PortFromEnv swaps the port in Addr for $PORT when set. Container
	// platforms inject the port this way.
	PortFromEnv bool
	// ForceAccept overwrites the Accept header on incoming requests.
	// Some clients send a bare Accept value the streamable transport
	// would otherwise reject.
	ForceAccept bool
	// CORSEnabled adds CORS headers for browser-based clients.
	CORSEnabled bool
	// CORSOrigins lists allowed origins. "*" allows any.
	CORSOrigins []string
}

// Serve runs the MCP server over the configured transport until ctx is
// canceled or the transport fails.
func Serve(ctx context.Context, s *server.MCPServer, opts TransportOptions, log zerolog.Logger) error {
	if opts.HTTP {
		return serveHTTP(ctx, s, opts, log)
	}
	return serveStdio(ctx, s, log)
}

// serveStdio speaks JSON-RPC over stdin/stdout. Nothing else may write to
// stdout while this runs.
func serveStdio(ctx context.Context, s *server.MCPServer, log zerolog.Logger) error {
	log.Info().Msg("serving MCP over stdio")

	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(stdlog.New(os.Stderr, "", stdlog.LstdFlags))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func serveHTTP(ctx context.Context, s *server.MCPServer, opts TransportOptions, log zerolog.Logger) error {
	addr, err := resolveAddr(opts)
	if err != nil {
		return err
	}

	streamable := server.NewStreamableHTTPServer(s,
		server.WithEndpointPath(opts.Path),
		server.WithStateLess(opts.Stateless),
	)

	var handler http.Handler = streamable
	if opts.ForceAccept {
		handler = forceAccept(handler)
	}
	if opts.CORSEnabled {
		handler = allowCORS(handler, opts.CORSOrigins)
	}

	mux := http.NewServeMux()
	mux.Handle(opts.Path, handler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	log.Info().
		Str("addr", addr).
		Str("path", opts.Path).
		Bool("stateless", opts.Stateless).
		Msg("serving MCP over streamable HTTP")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http transport: %w", err)
	}
	return nil
}

// resolveAddr applies the $PORT override when configured.
func resolveAddr(opts TransportOptions) (string, error) {
	if !opts.PortFromEnv {
		return opts.Addr, nil
	}

	port := os.Getenv("PORT")
	if port == "" {
		return opts.Addr, nil
	}

	host, _, err := net.SplitHostPort(opts.Addr)
	if err != nil {
		return "", fmt.Errorf("split addr %q: %w", opts.Addr, err)
	}
	return net.JoinHostPort(host, port), nil
}

func forceAccept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Set("Accept", "application/json, text/event-stream")
		next.ServeHTTP(w, r)
	})
}

func allowCORS(next http.Handler, origins []string) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			default:
				if _, ok := allowed[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				}
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Mcp-Session-Id, Last-Event-ID")
			w.Header().Set("Access-Control-Expose-Headers", "Mcp-Session-Id")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
