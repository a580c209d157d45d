package todo

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrItemAlreadyExists is returned when adding an item whose name is taken.
	ErrItemAlreadyExists = errors.New("todo item already exists")
	// ErrNoItemFound is returned when no item has the requested name.
	ErrNoItemFound = errors.New("no todo item found")
	// ErrInvalidDate is returned when date text does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidName is returned when an item name is empty.
	ErrInvalidName = errors.New("todo item name is required")
)

// Store defines the interface for to-do item persistence. Every backend
// enforces name uniqueness and reports the sentinel errors above, wrapped
// with the offending name or input.
type Store interface {
	// Add persists a new item.
	// Returns ErrItemAlreadyExists if the name is taken; nothing is written.
	Add(ctx context.Context, item Item) error

	// List returns every stored item in backend order. The result is a
	// snapshot and never nil.
	List(ctx context.Context) ([]Item, error)

	// MarkComplete sets the item complete with today's date.
	// Returns ErrNoItemFound if the item does not exist.
	MarkComplete(ctx context.Context, name string) error

	// RemoveItem deletes the item.
	// Returns ErrNoItemFound if the item does not exist.
	RemoveItem(ctx context.Context, name string) error

	// UpdateItem replaces due and priority and resets the item to active.
	// Returns ErrInvalidDate before touching the store if due does not parse,
	// and ErrNoItemFound if the item does not exist.
	UpdateItem(ctx context.Context, name, due, priority string) error

	io.Closer
}
