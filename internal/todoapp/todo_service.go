package todoapp

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/todo/internal/core/todo"
)

// TodoService wraps todo.Store with input parsing, filtering and logging.
// The store itself never logs.
type TodoService struct {
	store todo.Store
	clock todo.Clock
	log   zerolog.Logger
}

// NewTodoService creates a new TodoService.
func NewTodoService(store todo.Store, clock todo.Clock, log zerolog.Logger) *TodoService {
	return &TodoService{
		store: store,
		clock: clock,
		log:   log,
	}
}

// Add creates an item from user input. due may be "today".
func (s *TodoService) Add(ctx context.Context, name, due, priority string) (todo.Item, error) {
	d, err := todo.ParseDueDate(due, s.clock)
	if err != nil {
		return todo.Item{}, err
	}

	item, err := todo.NewItem(name, d.String(), priority)
	if err != nil {
		return todo.Item{}, err
	}

	if err := s.store.Add(ctx, item); err != nil {
		s.log.Debug().Ctx(ctx).Err(err).Str("name", item.Name).Msg("add failed")
		return todo.Item{}, err
	}

	s.log.Info().Ctx(ctx).Str("name", item.Name).Str("due", item.Due.String()).Msg("item added")
	return item, nil
}

// List returns all items whose name matches the glob pattern.
func (s *TodoService) List(ctx context.Context, pattern string) ([]todo.Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return todo.MatchName(items, pattern)
}

// Due returns the items due on or before the date text, which may be
// "today". Completed items are dropped unless includeComplete is set.
// The date is parsed before the store is read.
func (s *TodoService) Due(ctx context.Context, date string, includeComplete bool) ([]todo.Item, error) {
	by, err := todo.ParseDueDate(date, s.clock)
	if err != nil {
		return nil, err
	}

	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	items = todo.DueBy(items, by)
	if !includeComplete {
		items = todo.Active(items)
	}
	return items, nil
}

// Complete marks the named item complete.
func (s *TodoService) Complete(ctx context.Context, name string) error {
	if err := s.store.MarkComplete(ctx, name); err != nil {
		s.log.Debug().Ctx(ctx).Err(err).Str("name", name).Msg("complete failed")
		return err
	}
	s.log.Info().Ctx(ctx).Str("name", name).Msg("item completed")
	return nil
}

// Remove deletes the named item.
func (s *TodoService) Remove(ctx context.Context, name string) error {
	if err := s.store.RemoveItem(ctx, name); err != nil {
		s.log.Debug().Ctx(ctx).Err(err).Str("name", name).Msg("remove failed")
		return err
	}
	s.log.Info().Ctx(ctx).Str("name", name).Msg("item removed")
	return nil
}

// Update reschedules the named item and resets it to active. due may be
// "today".
func (s *TodoService) Update(ctx context.Context, name, due, priority string) error {
	d, err := todo.ParseDueDate(due, s.clock)
	if err != nil {
		return err
	}
	due = d.String()

	if err := s.store.UpdateItem(ctx, name, due, priority); err != nil {
		s.log.Debug().Ctx(ctx).Err(err).Str("name", name).Msg("update failed")
		return err
	}
	s.log.Info().Ctx(ctx).Str("name", name).Str("due", due).Msg("item updated")
	return nil
}

// Today returns the service's current date.
func (s *TodoService) Today() todo.Date {
	return todo.Today(s.clock)
}
