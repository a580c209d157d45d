// Package todotest provides a behavioural test suite that every todo.Store
// implementation runs against.
package todotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/todo/internal/core/todo"
)

// Now is the fixed instant stores under test should use as their clock.
var Now = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

// Clock returns Now.
func Clock() time.Time { return Now }

// Factory opens a fresh, empty store that uses Clock. The factory owns
// cleanup of the store it returns.
type Factory func(t *testing.T) todo.Store

// MustItem builds an item or fails the test.
func MustItem(t *testing.T, name, due, priority string) todo.Item {
	t.Helper()
	item, err := todo.NewItem(name, due, priority)
	require.NoError(t, err)
	return item
}

// ByName indexes items by name.
func ByName(items []todo.Item) map[string]todo.Item {
	out := make(map[string]todo.Item, len(items))
	for _, item := range items {
		out[item.Name] = item
	}
	return out
}

// RunStoreContract runs the shared store behaviour tests.
func RunStoreContract(t *testing.T, newStore Factory) {
	ctx := context.Background()
	today := todo.DateOf(Now)

	t.Run("add and list", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Add(ctx, MustItem(t, "a", "2024-01-01", "Low")))
		require.NoError(t, store.Add(ctx, MustItem(t, "b", "2024-02-01", "")))

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)

		got := ByName(items)
		assert.Equal(t, todo.NewDate(2024, time.January, 1), got["a"].Due)
		assert.Equal(t, "low", got["a"].Priority)
		assert.Equal(t, todo.StatusActive, got["a"].Status)
		assert.Nil(t, got["a"].Completed)
		assert.Empty(t, got["b"].Priority)
	})

	t.Run("list empty returns empty slice", func(t *testing.T) {
		store := newStore(t)

		items, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NotNil(t, items)
	})

	t.Run("add lowercases priority and defaults status", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Add(ctx, todo.Item{
			Name:     "raw",
			Due:      todo.NewDate(2024, time.January, 1),
			Priority: "HIGH",
		}))

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "high", items[0].Priority)
		assert.Equal(t, todo.StatusActive, items[0].Status)
	})

	t.Run("add rejects invalid item", func(t *testing.T) {
		store := newStore(t)

		err := store.Add(ctx, todo.Item{Name: "no-due"})
		assert.ErrorIs(t, err, todo.ErrInvalidDate)

		items, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("duplicate add fails without mutation", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Add(ctx, MustItem(t, "x", "2024-01-01", "low")))

		err := store.Add(ctx, MustItem(t, "x", "2025-05-05", "high"))
		require.ErrorIs(t, err, todo.ErrItemAlreadyExists)

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, todo.NewDate(2024, time.January, 1), items[0].Due)
		assert.Equal(t, "low", items[0].Priority)

		// store remains usable after the failed insert
		require.NoError(t, store.Add(ctx, MustItem(t, "y", "2024-01-02", "low")))
	})

	t.Run("missing name is not found everywhere", func(t *testing.T) {
		store := newStore(t)

		assert.ErrorIs(t, store.MarkComplete(ctx, "ghost"), todo.ErrNoItemFound)
		assert.ErrorIs(t, store.RemoveItem(ctx, "ghost"), todo.ErrNoItemFound)
		assert.ErrorIs(t, store.UpdateItem(ctx, "ghost", "2024-01-01", "low"), todo.ErrNoItemFound)

		require.NoError(t, store.Add(ctx, MustItem(t, "real", "2024-01-01", "low")))

		assert.ErrorIs(t, store.MarkComplete(ctx, "ghost"), todo.ErrNoItemFound)
		assert.ErrorIs(t, store.RemoveItem(ctx, "ghost"), todo.ErrNoItemFound)
		assert.ErrorIs(t, store.UpdateItem(ctx, "ghost", "2024-01-01", "low"), todo.ErrNoItemFound)

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, MustItem(t, "real", "2024-01-01", "low"), items[0])
	})

	t.Run("mark complete", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Add(ctx, MustItem(t, "x", "2024-01-01", "low")))
		require.NoError(t, store.MarkComplete(ctx, "x"))

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "x", items[0].Name)
		assert.Equal(t, todo.StatusComplete, items[0].Status)
		require.NotNil(t, items[0].Completed)
		assert.Equal(t, today, *items[0].Completed)
	})

	t.Run("update clears completion", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Add(ctx, MustItem(t, "x", "2024-01-01", "low")))
		require.NoError(t, store.MarkComplete(ctx, "x"))
		require.NoError(t, store.UpdateItem(ctx, "x", "2024-02-02", "HIGH"))

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, todo.StatusActive, items[0].Status)
		assert.Nil(t, items[0].Completed)
		assert.Equal(t, todo.NewDate(2024, time.February, 2), items[0].Due)
		assert.Equal(t, "high", items[0].Priority)
	})

	t.Run("update with bad date does not mutate", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Add(ctx, MustItem(t, "x", "2024-01-01", "low")))
		require.NoError(t, store.MarkComplete(ctx, "x"))

		for _, bad := range []string{"2024-13-40", "not-a-date", ""} {
			err := store.UpdateItem(ctx, "x", bad, "high")
			assert.ErrorIs(t, err, todo.ErrInvalidDate, bad)
		}

		// bad date wins over a missing name
		assert.ErrorIs(t, store.UpdateItem(ctx, "ghost", "nope", "high"), todo.ErrInvalidDate)

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, todo.StatusComplete, items[0].Status)
		assert.Equal(t, "low", items[0].Priority)
		assert.Equal(t, todo.NewDate(2024, time.January, 1), items[0].Due)
	})

	t.Run("remove", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Add(ctx, MustItem(t, "a", "2024-01-01", "low")))
		require.NoError(t, store.Add(ctx, MustItem(t, "b", "2024-01-02", "low")))
		require.NoError(t, store.RemoveItem(ctx, "a"))

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "b", items[0].Name)

		assert.ErrorIs(t, store.RemoveItem(ctx, "a"), todo.ErrNoItemFound)

		// name is free again
		require.NoError(t, store.Add(ctx, MustItem(t, "a", "2024-03-03", "high")))
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		store := newStore(t)

		want := []string{"charlie", "alpha", "bravo", "delta"}
		for _, name := range want {
			require.NoError(t, store.Add(ctx, MustItem(t, name, "2024-01-01", "low")))
		}

		items, err := store.List(ctx)
		require.NoError(t, err)

		got := make([]string, 0, len(items))
		for _, item := range items {
			got = append(got, item.Name)
		}
		assert.Equal(t, want, got)
	})

	t.Run("list is a snapshot", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Add(ctx, MustItem(t, "x", "2024-01-01", "low")))

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)

		require.NoError(t, store.MarkComplete(ctx, "x"))
		assert.Equal(t, todo.StatusActive, items[0].Status)
		assert.Nil(t, items[0].Completed)
	})

	t.Run("padded names resolve to the stored name", func(t *testing.T) {
		store := newStore(t)

		padded := todo.Item{Name: " x ", Due: todo.NewDate(2024, time.January, 1), Priority: "low"}
		require.NoError(t, store.Add(ctx, padded))

		err := store.Add(ctx, padded)
		require.ErrorIs(t, err, todo.ErrItemAlreadyExists)

		require.NoError(t, store.MarkComplete(ctx, " x "))
		require.NoError(t, store.UpdateItem(ctx, "x ", "2024-02-01", "high"))
		require.NoError(t, store.MarkComplete(ctx, "\tx"))

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "x", items[0].Name)
		assert.Equal(t, todo.NewDate(2024, time.February, 1), items[0].Due)
		assert.Equal(t, todo.StatusComplete, items[0].Status)

		require.NoError(t, store.RemoveItem(ctx, " x "))
		items, err = store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
