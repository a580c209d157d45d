package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/todo/internal/core/todo"
	"github.com/colonyops/todo/internal/core/todo/todotest"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path, WithClock(todotest.Clock))
	require.NoError(t, err, "Open")
	return store
}

func TestStoreContract(t *testing.T) {
	todotest.RunStoreContract(t, func(t *testing.T) todo.Store {
		store := openStore(t, filepath.Join(t.TempDir(), "todo.csv"))
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todo.csv")

	store := openStore(t, path)
	require.NoError(t, store.Add(ctx, todotest.MustItem(t, "a", "2024-01-01", "low")))
	require.NoError(t, store.Add(ctx, todotest.MustItem(t, "b, with comma", "2024-06-01", "high")))
	require.NoError(t, store.Add(ctx, todotest.MustItem(t, `c "quoted"`, "2025-01-01", "")))
	require.NoError(t, store.MarkComplete(ctx, "a"))
	want, err := store.List(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened := openStore(t, path)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, want, got)
}

func TestStore_FileLayout(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todo.csv")

	store := openStore(t, path)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Add(ctx, todotest.MustItem(t, "a", "2024-01-01", "Low")))
	require.NoError(t, store.Add(ctx, todotest.MustItem(t, "b", "2024-02-01", "high")))
	require.NoError(t, store.MarkComplete(ctx, "b"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"name,due,priority,completed,status\n"+
			"a,2024-01-01,low,,active\n"+
			"b,2024-02-01,high,2024-03-15,complete\n",
		string(data))

	require.NoError(t, store.RemoveItem(ctx, "a"))
	require.NoError(t, store.RemoveItem(ctx, "b"))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name,due,priority,completed,status\n", string(data))
}

func TestOpen_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todo.csv")

	store := openStore(t, path)
	defer func() { _ = store.Close() }()

	_, err := os.Stat(path)
	require.NoError(t, err)

	items, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOpen_LoadPolicy(t *testing.T) {
	const header = "name,due,priority,completed,status\n"

	tests := []struct {
		name    string
		content string
		wantErr bool
		want    int
	}{
		{name: "empty file", content: "", want: 0},
		{name: "header only", content: header, want: 0},
		{name: "blank status defaults to active", content: header + "a,2024-01-01,low,,\n", want: 1},
		{name: "wrong header", content: "name,due\n", wantErr: true},
		{name: "reordered header", content: "due,name,priority,completed,status\n", wantErr: true},
		{name: "duplicate names", content: header + "a,2024-01-01,low,,active\na,2024-02-01,high,,active\n", wantErr: true},
		{name: "bad due date", content: header + "a,2024-13-40,low,,active\n", wantErr: true},
		{name: "missing due date", content: header + "a,,low,,active\n", wantErr: true},
		{name: "bad completed date", content: header + "a,2024-01-01,low,yesterday,complete\n", wantErr: true},
		{name: "unknown status", content: header + "a,2024-01-01,low,,done\n", wantErr: true},
		{name: "complete without date", content: header + "a,2024-01-01,low,,complete\n", wantErr: true},
		{name: "active with date", content: header + "a,2024-01-01,low,2024-01-02,active\n", wantErr: true},
		{name: "short row", content: header + "a,2024-01-01\n", wantErr: true},
		{name: "blank name", content: header + ",2024-01-01,low,,active\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "todo.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			store, err := Open(path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformed)
				assert.Nil(t, store)
				return
			}
			require.NoError(t, err)
			defer func() { _ = store.Close() }()

			items, err := store.List(context.Background())
			require.NoError(t, err)
			assert.Len(t, items, tt.want)
			for _, item := range items {
				assert.Equal(t, todo.StatusActive, item.Status)
			}
		})
	}
}

func TestOpen_DuplicateNamesReportsLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.csv")
	content := "name,due,priority,completed,status\n" +
		"a,2024-01-01,low,,active\n" +
		"b,2024-01-01,low,,active\n" +
		"a,2024-02-01,high,,active\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrMalformed)
	assert.ErrorIs(t, err, todo.ErrItemAlreadyExists)
	assert.Contains(t, err.Error(), "line 4")
}

func TestOpen_Locked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.csv")

	first := openStore(t, path)

	_, err := Open(path)
	require.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestStore_Closed(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "todo.csv"))
	require.NoError(t, store.Close())
	require.NoError(t, store.Close(), "close is idempotent")

	_, err := store.List(ctx)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, store.Add(ctx, todotest.MustItem(t, "a", "2024-01-01", "low")), ErrClosed)
	assert.ErrorIs(t, store.MarkComplete(ctx, "a"), ErrClosed)
}

func TestStore_FailedWriteKeepsCache(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, "todo.csv")

	store := openStore(t, path)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Add(ctx, todotest.MustItem(t, "a", "2024-01-01", "low")))

	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err := store.Add(ctx, todotest.MustItem(t, "b", "2024-01-01", "low"))
	require.Error(t, err)

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Name)

	require.NoError(t, os.Chmod(dir, 0o755))
	require.NoError(t, store.Add(ctx, todotest.MustItem(t, "b", "2024-01-01", "low")))
}
