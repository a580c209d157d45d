package todo

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// DueBy returns the items due on or before date, preserving input order.
func DueBy(items []Item, date Date) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.Due.After(date) {
			out = append(out, item)
		}
	}
	return out
}

// Active returns the items that are not complete, preserving input order.
func Active(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.IsComplete() {
			out = append(out, item)
		}
	}
	return out
}

// MatchName filters items whose name matches a doublestar glob pattern.
// An empty pattern matches everything.
func MatchName(items []Item, pattern string) ([]Item, error) {
	if pattern == "" {
		return items, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid name pattern %q", pattern)
	}

	out := make([]Item, 0, len(items))
	for _, item := range items {
		ok, err := doublestar.Match(pattern, item.Name)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", pattern, err)
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}
