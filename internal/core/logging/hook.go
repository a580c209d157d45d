package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook adds the command and backend stored in the event's context.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if command := GetCommand(ctx); command != "" {
		e.Str("command", command)
	}

	if backend := GetBackend(ctx); backend != "" {
		e.Str("backend", backend)
	}
}
