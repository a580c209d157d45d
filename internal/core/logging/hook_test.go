package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextValues(t *testing.T) {
	ctx := WithBackend(WithCommand(context.Background(), "add"), "csv")

	assert.Equal(t, "add", GetCommand(ctx))
	assert.Equal(t, "csv", GetBackend(ctx))

	assert.Empty(t, GetCommand(context.Background()))
	assert.Empty(t, GetBackend(context.Background()))
}

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		want      map[string]string
		wantEmpty []string
	}{
		{
			name: "command and backend",
			ctx:  WithBackend(WithCommand(context.Background(), "add"), "sqlite"),
			want: map[string]string{"command": "add", "backend": "sqlite"},
		},
		{
			name:      "command only",
			ctx:       WithCommand(context.Background(), "list"),
			want:      map[string]string{"command": "list"},
			wantEmpty: []string{"backend"},
		},
		{
			name:      "no context values",
			ctx:       context.Background(),
			wantEmpty: []string{"command", "backend"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.ctx).Msg("test")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for k, v := range tt.want {
				assert.Equal(t, v, entry[k], k)
			}
			for _, k := range tt.wantEmpty {
				assert.NotContains(t, entry, k)
			}
		})
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	Component("todo-service").Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "todo-service", entry["cmp"])
	assert.Equal(t, "hello", entry["message"])
}
