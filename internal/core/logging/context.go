// Package logging carries request scoped fields to zerolog through the
// context.
package logging

import "context"

type contextKey string

const (
	commandKey contextKey = "command"
	backendKey contextKey = "backend"
)

// WithCommand adds the running command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// WithBackend adds the active store backend to the context.
func WithBackend(ctx context.Context, backend string) context.Context {
	return context.WithValue(ctx, backendKey, backend)
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if v, ok := ctx.Value(commandKey).(string); ok {
		return v
	}
	return ""
}

// GetBackend retrieves the backend from the context.
// Returns empty string if not present.
func GetBackend(ctx context.Context) string {
	if v, ok := ctx.Value(backendKey).(string); ok {
		return v
	}
	return ""
}
