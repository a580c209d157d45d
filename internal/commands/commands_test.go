package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todo/internal/core/config"
	"github.com/colonyops/todo/internal/core/styles"
	"github.com/colonyops/todo/internal/core/todo"
	"github.com/colonyops/todo/internal/data/memory"
	"github.com/colonyops/todo/internal/printer"
	"github.com/colonyops/todo/internal/todoapp"
)

func testClock() time.Time {
	return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
}

type harness struct {
	app   *todoapp.App
	flags *Flags
	out   bytes.Buffer

	interactive bool
	confirmed   bool
	prompts     []string

	stdin string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	plain, ok := styles.GetTheme("plain")
	require.True(t, ok)
	styles.SetTheme(plain)
	t.Cleanup(func() {
		def, _ := styles.GetTheme(styles.DefaultTheme)
		styles.SetTheme(def)
	})

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	store := memory.New(testClock)
	app := todoapp.NewApp(store, &cfg, testClock, zerolog.Nop())
	t.Cleanup(func() { _ = app.Close() })

	return &harness{app: app, flags: &Flags{Config: &cfg}}
}

// run builds a fresh command tree and runs args against the shared app.
func (h *harness) run(args ...string) error {
	h.out.Reset()

	root := &cli.Command{
		Name:      "todo",
		Writer:    &h.out,
		ErrWriter: &h.out,
	}

	remove := NewRemoveCmd(h.flags, h.app)
	remove.interactive = func() bool { return h.interactive }
	remove.confirm = func(name string) (bool, error) {
		h.prompts = append(h.prompts, name)
		return h.confirmed, nil
	}

	imp := NewImportCmd(h.flags, h.app)
	imp.reader.Stdin = strings.NewReader(h.stdin)

	root = NewAddCmd(h.flags, h.app).Register(root)
	root = NewListCmd(h.flags, h.app).Register(root)
	root = NewDueCmd(h.flags, h.app).Register(root)
	root = NewCompleteCmd(h.flags, h.app).Register(root)
	root = NewUpdateCmd(h.flags, h.app).Register(root)
	root = remove.Register(root)
	root = imp.Register(root)
	root = NewConfigValidateCmd(h.flags).Register(root)

	ctx := printer.NewContext(context.Background(), printer.New(&h.out))
	return root.Run(ctx, append([]string{"todo"}, args...))
}

func (h *harness) lines() []string {
	return strings.Split(strings.TrimRight(h.out.String(), "\n"), "\n")
}

func (h *harness) mustRun(t *testing.T, args ...string) {
	t.Helper()
	require.NoError(t, h.run(args...), h.out.String())
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)

	h.mustRun(t, "add", "pay rent", "2024-04-01", "HIGH")
	assert.Contains(t, h.out.String(), `Added "pay rent" due 2024-04-01`)

	h.mustRun(t, "add", "groceries", "today")

	h.mustRun(t, "list")
	assert.Equal(t, []string{
		"Name: pay rent, Due: 2024-04-01, Priority: high, Status: active, Completed: None",
		"Name: groceries, Due: 2024-03-15, Priority: , Status: active, Completed: None",
	}, h.lines())

	h.mustRun(t, "ls", "--match", "pay*")
	assert.Equal(t, []string{
		"Name: pay rent, Due: 2024-04-01, Priority: high, Status: active, Completed: None",
	}, h.lines())
}

func TestAdd_Errors(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "x", "2024-04-01")

	err := h.run("add", "x", "2024-05-01")
	require.ErrorIs(t, err, todo.ErrItemAlreadyExists)
	assert.Equal(t, `an item named "x" already exists`, err.Error())

	err = h.run("add", "y", "04/01/2024")
	require.ErrorIs(t, err, todo.ErrInvalidDate)
	assert.Equal(t, "invalid date: use YYYY-MM-DD", err.Error())

	err = h.run("add", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")

	items, err := h.app.Todos.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestList_JSON(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "x", "2024-04-01", "low")
	h.mustRun(t, "complete", "x")

	h.mustRun(t, "all", "--json")

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(h.lines()[0]), &got))
	assert.Equal(t, "x", got["name"])
	assert.Equal(t, "2024-04-01", got["due"])
	assert.Equal(t, "complete", got["status"])
	assert.Equal(t, "2024-03-15", got["completed"])
}

func TestDue(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "late", "2024-03-01", "high")
	h.mustRun(t, "add", "now", "2024-03-15", "low")
	h.mustRun(t, "add", "later", "2024-04-01", "low")
	h.mustRun(t, "complete", "now")

	h.mustRun(t, "due", "today")
	assert.Equal(t, []string{
		"Name: late, Due: 2024-03-01, Priority: high, Status: active, Completed: None",
	}, h.lines())

	h.mustRun(t, "due", "--all", "2024-03-15")
	assert.Equal(t, []string{
		"Name: late, Due: 2024-03-01, Priority: high, Status: active, Completed: None",
		"Name: now, Due: 2024-03-15, Priority: low, Status: complete, Completed: 2024-03-15",
	}, h.lines())

	h.mustRun(t, "due", "2024-01-01")
	assert.Empty(t, strings.TrimSpace(h.out.String()))

	err := h.run("due", "someday")
	assert.ErrorIs(t, err, todo.ErrInvalidDate)
}

func TestCompleteAndUpdate(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "x", "2024-03-01", "low")

	h.mustRun(t, "complete", "x")
	assert.Contains(t, h.out.String(), `Completed "x"`)

	h.mustRun(t, "update", "x", "2024-05-01", "High")
	h.mustRun(t, "list")
	assert.Equal(t, []string{
		"Name: x, Due: 2024-05-01, Priority: high, Status: active, Completed: None",
	}, h.lines())

	err := h.run("complete", "missing")
	require.ErrorIs(t, err, todo.ErrNoItemFound)
	assert.Equal(t, `no item named "missing"`, err.Error())

	err = h.run("update", "missing", "bad-date", "low")
	assert.ErrorIs(t, err, todo.ErrInvalidDate)

	err = h.run("update", "x", "2024-05-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
}

func TestRemove(t *testing.T) {
	t.Run("non interactive removes without prompt", func(t *testing.T) {
		h := newHarness(t)
		h.mustRun(t, "add", "x", "2024-03-01")

		h.mustRun(t, "remove", "x")
		assert.Empty(t, h.prompts)
		assert.Contains(t, h.out.String(), `Removed "x"`)

		err := h.run("rm", "x")
		assert.ErrorIs(t, err, todo.ErrNoItemFound)
	})

	t.Run("interactive declined keeps item", func(t *testing.T) {
		h := newHarness(t)
		h.interactive = true
		h.mustRun(t, "add", "x", "2024-03-01")

		h.mustRun(t, "remove", "x")
		assert.Equal(t, []string{"x"}, h.prompts)
		assert.Contains(t, h.out.String(), "Remove cancelled")

		items, err := h.app.Todos.List(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("interactive confirmed", func(t *testing.T) {
		h := newHarness(t)
		h.interactive = true
		h.confirmed = true
		h.mustRun(t, "add", "x", "2024-03-01")

		h.mustRun(t, "remove", "x")
		assert.Equal(t, []string{"x"}, h.prompts)
	})

	t.Run("yes skips prompt", func(t *testing.T) {
		h := newHarness(t)
		h.interactive = true
		h.mustRun(t, "add", "x", "2024-03-01")

		h.mustRun(t, "remove", "--yes", "x")
		assert.Empty(t, h.prompts)
		assert.Contains(t, h.out.String(), `Removed "x"`)
	})
}

func TestImport(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "existing", "2024-03-01")

	h.stdin = `[
		{"name": "a", "due": "2024-04-01", "priority": "High"},
		{"name": "existing", "due": "2024-04-01"},
		{"name": "c", "due": "today"}
	]`

	err := h.run("import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "imported 2 of 3")
	assert.Contains(t, h.out.String(), `! row 2 skipped: an item named "existing" already exists`)

	items, err := h.app.Todos.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "high", items[1].Priority)
	assert.Equal(t, "c", items[2].Name)
	assert.Equal(t, todo.Today(testClock), items[2].Due)

	t.Run("invalid document adds nothing", func(t *testing.T) {
		h.stdin = `[
			{"name": "ok", "due": "2024-04-01"},
			{"name": "bad", "due": "not a date"}
		]`

		err := h.run("import")
		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Len(t, fieldErrs, 1)
		assert.Contains(t, fieldErrs[0].Field, "[1].due")

		items, err := h.app.Todos.List(context.Background(), "ok")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "items.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"name":"d","due":"2024-05-01"}]`), 0o644))

		h.mustRun(t, "import", "--file", path)
		assert.Contains(t, h.out.String(), "Imported 1 item(s)")
	})
}

func TestConfigValidate(t *testing.T) {
	h := newHarness(t)
	h.flags.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")

	h.mustRun(t, "config", "validate")
	assert.Contains(t, h.out.String(), "Configuration is valid")

	h.flags.Config.Backend = "postgres"

	err := h.run("config", "validate")
	require.Error(t, err)
	assert.Contains(t, h.out.String(), "backend")

	err = h.run("config", "validate", "--format", "json")
	require.Error(t, err)

	var out struct {
		Valid  bool                `json:"valid"`
		Errors []validationProblem `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &out))
	assert.False(t, out.Valid)
	require.NotEmpty(t, out.Errors)
	assert.Contains(t, out.Errors[0].Field, "backend")
}

func TestRenderItem_Overdue(t *testing.T) {
	_ = newHarness(t)
	today := todo.Today(testClock)

	item, err := todo.NewItem("x", "2024-03-01", "low")
	require.NoError(t, err)

	assert.Equal(t,
		"Name: x, Due: 2024-03-01, Priority: low, Status: active, Completed: None",
		renderItem(item, today),
	)
}
