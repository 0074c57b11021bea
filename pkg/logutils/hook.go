package logutils

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts the MCP session ID from the event context and
// adds it to log events. Sessions only exist on the HTTP transport, so
// stdio events pass through untagged.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if sessionID := GetSessionID(ctx); sessionID != "" {
		e.Str("session_id", sessionID)
	}
}
