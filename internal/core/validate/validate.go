// Package validate provides shared validation functions for user supplied
// item fields.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/todo/internal/core/todo"
)

// ItemName validates an item name is non-empty after trimming whitespace.
func ItemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// DueDate validates a due date is YYYY-MM-DD or "today".
func DueDate(due string) error {
	if _, err := todo.ParseDueDate(due, time.Now); err != nil {
		return fmt.Errorf("must be YYYY-MM-DD or %q", todo.TodayToken)
	}
	return nil
}

// ItemFields validates the name and due date of one item, reporting fields
// under prefix.
func ItemFields(prefix, name, due string) error {
	return criterio.ValidateStruct(
		criterio.Run(prefix+".name", name, ItemName),
		criterio.Run(prefix+".due", due, DueDate),
	)
}
