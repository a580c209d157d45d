// Package memory provides an in-memory todo.Store. Nothing is persisted;
// it backs service and command tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/colonyops/todo/internal/core/todo"
)

// Store implements todo.Store in memory, preserving insertion order.
type Store struct {
	mu    sync.RWMutex
	clock todo.Clock
	items []todo.Item
}

var _ todo.Store = (*Store)(nil)

// New creates an empty store. A nil clock uses time.Now.
func New(clock todo.Clock) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{clock: clock, items: []todo.Item{}}
}

// Add persists a new item.
func (s *Store) Add(ctx context.Context, item todo.Item) error {
	item = item.Normalize()
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(item.Name) >= 0 {
		return fmt.Errorf("%w: %q", todo.ErrItemAlreadyExists, item.Name)
	}

	s.items = append(s.items, clone(item))
	return nil
}

// List returns a copy of all items.
func (s *Store) List(ctx context.Context) ([]todo.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]todo.Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, clone(item))
	}
	return out, nil
}

// MarkComplete sets the item complete as of today.
func (s *Store) MarkComplete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", todo.ErrNoItemFound, name)
	}

	s.items[i] = s.items[i].Complete(todo.Today(s.clock))
	return nil
}

// RemoveItem deletes the item.
func (s *Store) RemoveItem(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", todo.ErrNoItemFound, name)
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// UpdateItem replaces due and priority and resets the item to active.
func (s *Store) UpdateItem(ctx context.Context, name, due, priority string) error {
	d, err := todo.ParseDate(due)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", todo.ErrNoItemFound, name)
	}

	s.items[i] = s.items[i].Reschedule(d, priority)
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func (s *Store) indexOf(name string) int {
	name = todo.NormalizeName(name)
	for i, item := range s.items {
		if item.Name == name {
			return i
		}
	}
	return -1
}

func clone(item todo.Item) todo.Item {
	if item.Completed != nil {
		c := *item.Completed
		item.Completed = &c
	}
	return item
}
