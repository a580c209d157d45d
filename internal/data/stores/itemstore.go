// Package stores implements todo.Store on top of the SQLite database.
package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/colonyops/todo/internal/core/todo"
	"github.com/colonyops/todo/internal/data/db"
)

// ItemStore implements todo.Store using SQLite.
type ItemStore struct {
	db    *db.DB
	clock todo.Clock
}

var _ todo.Store = (*ItemStore)(nil)

// Option configures an ItemStore.
type Option func(*ItemStore)

// WithClock sets the clock used for completion dates.
func WithClock(clock todo.Clock) Option {
	return func(s *ItemStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewItemStore creates a new SQLite-backed item store. The store takes
// ownership of database and closes it in Close.
func NewItemStore(database *db.DB, opts ...Option) *ItemStore {
	s := &ItemStore{db: database, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add persists a new item. Returns todo.ErrItemAlreadyExists if the name
// is taken (enforced by the unique index); the insert is rolled back.
func (s *ItemStore) Add(ctx context.Context, item todo.Item) error {
	item = item.Normalize()
	if err := item.Validate(); err != nil {
		return err
	}

	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		return q.CreateItem(ctx, itemToParams(uuid.NewString(), item))
	})
	if err != nil {
		if IsUniqueConstraintError(err) {
			return fmt.Errorf("%w: %q", todo.ErrItemAlreadyExists, item.Name)
		}
		return fmt.Errorf("create item: %w", err)
	}

	return nil
}

// List returns all items in insertion order.
func (s *ItemStore) List(ctx context.Context) ([]todo.Item, error) {
	rows, err := s.db.Queries().ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	items := make([]todo.Item, 0, len(rows))
	for _, row := range rows {
		item, err := rowToItem(row)
		if err != nil {
			return nil, fmt.Errorf("convert item %q: %w", row.Name, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// MarkComplete sets the item complete as of today.
func (s *ItemStore) MarkComplete(ctx context.Context, name string) error {
	today := todo.Today(s.clock)
	return s.mutate(ctx, name, "complete item", func(item todo.Item) todo.Item {
		return item.Complete(today)
	})
}

// RemoveItem deletes the item.
func (s *ItemStore) RemoveItem(ctx context.Context, name string) error {
	return s.db.WithTx(ctx, func(q *db.Queries) error {
		row, err := s.lookup(ctx, q, name)
		if err != nil {
			return err
		}

		if err := q.DeleteItem(ctx, row.ID); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	})
}

// UpdateItem replaces due and priority and resets the item to active.
// The date is parsed before the transaction starts.
func (s *ItemStore) UpdateItem(ctx context.Context, name, due, priority string) error {
	d, err := todo.ParseDate(due)
	if err != nil {
		return err
	}

	return s.mutate(ctx, name, "update item", func(item todo.Item) todo.Item {
		return item.Reschedule(d, priority)
	})
}

// Close closes the database.
func (s *ItemStore) Close() error {
	return s.db.Close()
}

// mutate loads the named item, applies fn and writes the result back in one
// transaction.
func (s *ItemStore) mutate(ctx context.Context, name, op string, fn func(todo.Item) todo.Item) error {
	return s.db.WithTx(ctx, func(q *db.Queries) error {
		row, err := s.lookup(ctx, q, name)
		if err != nil {
			return err
		}

		item, err := rowToItem(row)
		if err != nil {
			return fmt.Errorf("convert item %q: %w", name, err)
		}

		params := itemToParams(row.ID, fn(item))
		err = q.UpdateItemState(ctx, db.UpdateItemStateParams{
			ID:        params.ID,
			Due:       params.Due,
			Priority:  params.Priority,
			Status:    params.Status,
			Completed: params.Completed,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})
}

func (s *ItemStore) lookup(ctx context.Context, q *db.Queries, name string) (db.ItemRow, error) {
	row, err := q.GetItemByName(ctx, todo.NormalizeName(name))
	if err != nil {
		if IsNotFoundError(err) {
			return db.ItemRow{}, fmt.Errorf("%w: %q", todo.ErrNoItemFound, name)
		}
		return db.ItemRow{}, fmt.Errorf("get item: %w", err)
	}
	return row, nil
}

func itemToParams(id string, item todo.Item) db.CreateItemParams {
	var completed sql.NullString
	if item.Completed != nil {
		completed = toNullString(item.Completed.String())
	}

	return db.CreateItemParams{
		ID:        id,
		Name:      item.Name,
		Due:       item.Due.String(),
		Priority:  toNullString(item.Priority),
		Status:    string(item.Status),
		Completed: completed,
	}
}

func rowToItem(row db.ItemRow) (todo.Item, error) {
	due, err := todo.ParseDate(row.Due)
	if err != nil {
		return todo.Item{}, fmt.Errorf("due: %w", err)
	}

	item := todo.Item{
		Name:     row.Name,
		Due:      due,
		Priority: fromNullString(row.Priority),
		Status:   todo.Status(row.Status),
	}

	if row.Completed.Valid {
		completed, err := todo.ParseDate(row.Completed.String)
		if err != nil {
			return todo.Item{}, fmt.Errorf("completed: %w", err)
		}
		item.Completed = &completed
	}

	return item, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func fromNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
