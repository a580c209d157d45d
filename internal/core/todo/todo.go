// Package todo defines the to-do item domain model and the store contract
// shared by every persistence backend.
package todo

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle state of an item.
type Status string

const (
	StatusActive   Status = "active"
	StatusComplete Status = "complete"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusComplete:
		return true
	}
	return false
}

// Clock returns the current time. Stores and date parsing take a Clock so
// tests can pin "today".
type Clock func() time.Time

// Item is a single to-do entry. Name is the natural key.
type Item struct {
	Name      string `json:"name"`
	Due       Date   `json:"due"`
	Priority  string `json:"priority"`
	Status    Status `json:"status"`
	Completed *Date  `json:"completed"`
}

// NewItem builds an active item from user input. The due date must parse
// with ParseDate and the priority is lowercased.
func NewItem(name, due, priority string) (Item, error) {
	name = NormalizeName(name)
	if name == "" {
		return Item{}, ErrInvalidName
	}

	d, err := ParseDate(due)
	if err != nil {
		return Item{}, err
	}

	return Item{
		Name:     name,
		Due:      d,
		Priority: NormalizePriority(priority),
		Status:   StatusActive,
	}, nil
}

// NormalizeName trims surrounding whitespace from an item name. Stores
// apply it on write and on every lookup.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizePriority trims and lowercases a priority label.
func NormalizePriority(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}

// IsComplete reports whether the item has been marked complete.
func (i Item) IsComplete() bool {
	return i.Status == StatusComplete
}

// Complete returns a copy of i marked complete on the given day.
func (i Item) Complete(on Date) Item {
	i.Status = StatusComplete
	i.Completed = &on
	return i
}

// Reschedule returns a copy of i with a new due date and priority. The item
// is reset to active with no completion date.
func (i Item) Reschedule(due Date, priority string) Item {
	i.Due = due
	i.Priority = NormalizePriority(priority)
	i.Status = StatusActive
	i.Completed = nil
	return i
}

// Normalize fills defaults for an item about to be written.
func (i Item) Normalize() Item {
	i.Name = NormalizeName(i.Name)
	i.Priority = NormalizePriority(i.Priority)
	if i.Status == "" {
		i.Status = StatusActive
	}
	if i.Status == StatusActive {
		i.Completed = nil
	}
	return i
}

// Validate checks the item invariants a store relies on before writing.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrInvalidName
	}
	if i.Due.IsZero() {
		return fmt.Errorf("%w: due date is required", ErrInvalidDate)
	}
	if !i.Status.IsValid() {
		return fmt.Errorf("invalid status %q", i.Status)
	}
	if (i.Status == StatusComplete) != (i.Completed != nil) {
		return fmt.Errorf("item %q: completed date must be set only when status is %s", i.Name, StatusComplete)
	}
	return nil
}
