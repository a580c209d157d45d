package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/todo/internal/commands"
	"github.com/colonyops/todo/internal/printer"
	"github.com/colonyops/todo/internal/todoapp"
)

type validateOutput struct {
	Valid  bool `json:"valid"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// runRoot runs the full command tree with the given config file contents.
func runRoot(t *testing.T, configYAML string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), 0o644))

	var out bytes.Buffer
	root := newRootCmd(&commands.Flags{}, &todoapp.App{})
	root.Writer = &out
	root.ErrWriter = &out

	full := append([]string{
		"todo",
		"--log-file", filepath.Join(dir, "todo.log"),
		"--config", configPath,
		"--data-dir", filepath.Join(dir, "data"),
	}, args...)

	ctx := printer.NewContext(context.Background(), printer.New(&out))
	err := root.Run(ctx, full)
	return out.String(), err
}

func TestConfigValidate_ReportsInvalidBackend(t *testing.T) {
	out, err := runRoot(t, "backend: postgres\n", "config", "validate", "--format", "json")
	require.Error(t, err)

	var got validateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.False(t, got.Valid)
	require.Len(t, got.Errors, 1)
	assert.Contains(t, got.Errors[0].Field, "backend")

	// Every other command refuses the same config.
	_, err = runRoot(t, "backend: postgres\n", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestConfigValidate_ReportsUnusableCSVPath(t *testing.T) {
	csvDir := t.TempDir()
	cfg := "backend: csv\ncsv:\n  path: " + csvDir + "\n"

	out, err := runRoot(t, cfg, "config", "validate", "--format", "json")
	require.Error(t, err)

	var got validateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	require.Len(t, got.Errors, 1)
	assert.Contains(t, got.Errors[0].Field, "csv.path")
}

func TestConfigValidate_Valid(t *testing.T) {
	out, err := runRoot(t, "backend: csv\n", "config", "validate", "--format", "json")
	require.NoError(t, err)

	var got validateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.True(t, got.Valid)
}

func TestRoot_AddAndList(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("backend: csv\ntheme: plain\n"), 0o644))

	run := func(args ...string) string {
		var out bytes.Buffer
		root := newRootCmd(&commands.Flags{}, &todoapp.App{})
		root.Writer = &out

		full := append([]string{
			"todo",
			"--log-file", filepath.Join(dir, "todo.log"),
			"--config", configPath,
			"--data-dir", dir,
		}, args...)

		ctx := printer.NewContext(context.Background(), printer.New(&out))
		require.NoError(t, root.Run(ctx, full))
		return out.String()
	}

	run("add", "pay rent", "2024-04-01", "high")
	out := run("list", "--json")
	assert.Contains(t, out, `"name":"pay rent"`)

	_, err := os.Stat(filepath.Join(dir, "todo.csv"))
	require.NoError(t, err)
}
