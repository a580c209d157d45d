// Package csvfile implements todo.Store on a single CSV file.
//
// The whole file is loaded into memory when the store is opened and
// rewritten in full after every mutation. The store holds an advisory lock
// on "<path>.lock" for its lifetime, so a second store on the same path
// fails with ErrLocked instead of racing the first.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/colonyops/todo/internal/core/todo"
	"github.com/colonyops/todo/pkg/fsutil"
)

var (
	// ErrLocked is returned by Open when another store holds the file.
	ErrLocked = errors.New("todo file is locked by another process")
	// ErrMalformed is returned by Open when the file cannot be loaded.
	ErrMalformed = errors.New("malformed todo file")
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store is closed")
)

// Header is the first row of every todo file.
var Header = []string{"name", "due", "priority", "completed", "status"}

const (
	colName = iota
	colDue
	colPriority
	colCompleted
	colStatus
)

// Store implements todo.Store using a CSV file.
type Store struct {
	path  string
	clock todo.Clock
	lock  *flock.Flock

	mu     sync.Mutex
	items  []todo.Item
	index  map[string]int
	closed bool
}

var _ todo.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for completion dates.
func WithClock(clock todo.Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Open locks path, creating it if absent, and loads every item.
//
// Loading is strict: a wrong header, a duplicate name, an unparsable date,
// an unknown status, or a completed date that disagrees with the status
// fail with ErrMalformed. A blank status is read as active.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{
		path:  path,
		clock: time.Now,
		lock:  flock.New(path + ".lock"),
	}
	for _, opt := range opts {
		opt(s)
	}

	locked, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	items, err := load(path)
	if err != nil {
		_ = s.lock.Unlock()
		return nil, err
	}

	s.items = items
	s.index = buildIndex(items)
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Add persists a new item.
func (s *Store) Add(ctx context.Context, item todo.Item) error {
	item = item.Normalize()
	if err := item.Validate(); err != nil {
		return err
	}

	return s.update(func(items []todo.Item, index map[string]int) ([]todo.Item, error) {
		if _, ok := index[item.Name]; ok {
			return nil, fmt.Errorf("%w: %q", todo.ErrItemAlreadyExists, item.Name)
		}
		return append(items, item), nil
	})
}

// List returns a copy of all items in file order.
func (s *Store) List(ctx context.Context) ([]todo.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	return cloneItems(s.items), nil
}

// MarkComplete sets the item complete as of today.
func (s *Store) MarkComplete(ctx context.Context, name string) error {
	today := todo.Today(s.clock)
	return s.update(func(items []todo.Item, index map[string]int) ([]todo.Item, error) {
		i, ok := index[todo.NormalizeName(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", todo.ErrNoItemFound, name)
		}
		items[i] = items[i].Complete(today)
		return items, nil
	})
}

// RemoveItem deletes the item.
func (s *Store) RemoveItem(ctx context.Context, name string) error {
	return s.update(func(items []todo.Item, index map[string]int) ([]todo.Item, error) {
		i, ok := index[todo.NormalizeName(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", todo.ErrNoItemFound, name)
		}
		return slices.Delete(items, i, i+1), nil
	})
}

// UpdateItem replaces due and priority and resets the item to active.
func (s *Store) UpdateItem(ctx context.Context, name, due, priority string) error {
	d, err := todo.ParseDate(due)
	if err != nil {
		return err
	}

	return s.update(func(items []todo.Item, index map[string]int) ([]todo.Item, error) {
		i, ok := index[todo.NormalizeName(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", todo.ErrNoItemFound, name)
		}
		items[i] = items[i].Reschedule(d, priority)
		return items, nil
	})
}

// Close releases the file lock. Further calls fail with ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.items = nil
	s.index = nil

	if err := s.lock.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", s.path, err)
	}
	return nil
}

// update applies fn to a copy of the cache, rewrites the file from the
// result and only then swaps the copy in. A failed write leaves both the
// file and the cache as they were.
func (s *Store) update(fn func(items []todo.Item, index map[string]int) ([]todo.Item, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	next, err := fn(cloneItems(s.items), s.index)
	if err != nil {
		return err
	}

	if err := save(s.path, next); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}

	s.items = next
	s.index = buildIndex(next)
	return nil
}

func load(path string) ([]todo.Item, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	items, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}
	return items, nil
}

func decode(r io.Reader) ([]todo.Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []todo.Item{}, nil
	}
	if err != nil {
		return nil, err
	}
	if !slices.Equal(header, Header) {
		return nil, fmt.Errorf("unexpected header %v, want %v", header, Header)
	}

	items := []todo.Item{}
	seen := make(map[string]int)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := cr.FieldPos(0)

		item, err := recordToItem(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if first, ok := seen[item.Name]; ok {
			return nil, fmt.Errorf("line %d: %w: %q (first on line %d)", line, todo.ErrItemAlreadyExists, item.Name, first)
		}
		seen[item.Name] = line

		items = append(items, item)
	}

	return items, nil
}

func save(path string, items []todo.Item) error {
	return fsutil.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(Header); err != nil {
			return err
		}
		for _, item := range items {
			if err := cw.Write(itemToRecord(item)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

func recordToItem(record []string) (todo.Item, error) {
	due, err := todo.ParseDate(record[colDue])
	if err != nil {
		return todo.Item{}, fmt.Errorf("due: %w", err)
	}

	item := todo.Item{
		Name:     record[colName],
		Due:      due,
		Priority: record[colPriority],
		Status:   todo.Status(record[colStatus]),
	}
	if item.Status == "" {
		item.Status = todo.StatusActive
	}

	if record[colCompleted] != "" {
		completed, err := todo.ParseDate(record[colCompleted])
		if err != nil {
			return todo.Item{}, fmt.Errorf("completed: %w", err)
		}
		item.Completed = &completed
	}

	if err := item.Validate(); err != nil {
		return todo.Item{}, err
	}
	return item, nil
}

func itemToRecord(item todo.Item) []string {
	record := make([]string, len(Header))
	record[colName] = item.Name
	record[colDue] = item.Due.String()
	record[colPriority] = item.Priority
	if item.Completed != nil {
		record[colCompleted] = item.Completed.String()
	}
	record[colStatus] = string(item.Status)
	return record
}

func buildIndex(items []todo.Item) map[string]int {
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.Name] = i
	}
	return index
}

func cloneItems(items []todo.Item) []todo.Item {
	out := make([]todo.Item, len(items))
	for i, item := range items {
		if item.Completed != nil {
			c := *item.Completed
			item.Completed = &c
		}
		out[i] = item
	}
	return out
}
