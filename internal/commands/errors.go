package commands

import (
	"errors"
	"fmt"

	"github.com/colonyops/todo/internal/core/todo"
)

// userError carries a message written for the terminal while keeping the
// cause available to errors.Is.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// describe maps store errors onto user messages. Errors without a mapping
// are wrapped with op.
func describe(err error, op, name string) error {
	if err == nil {
		return nil
	}

	var msg string
	switch {
	case errors.Is(err, todo.ErrItemAlreadyExists):
		msg = fmt.Sprintf("an item named %q already exists", name)
	case errors.Is(err, todo.ErrNoItemFound):
		msg = fmt.Sprintf("no item named %q", name)
	case errors.Is(err, todo.ErrInvalidDate):
		msg = "invalid date: use YYYY-MM-DD"
	case errors.Is(err, todo.ErrInvalidName):
		msg = "item name cannot be empty"
	default:
		return fmt.Errorf("%s: %w", op, err)
	}

	return &userError{msg: msg, err: err}
}
