package generator

import (
	"errors"
	"fmt"
)

var (
	ErrNoProducts       = errors.New("no sellable items")
	ErrNoUsers          = errors.New("no users to assign orders to")
	ErrInvalidCount     = errors.New("must be greater than zero")
	ErrInvalidDateRange = errors.New("start date is after end date")
)

// PreconditionError names the violated precondition and the value that broke it.
type PreconditionError struct {
	Field string
	Value any
	Err   error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %v", e.Field, e.Value, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

func precondition(field string, value any, err error) error {
	return &PreconditionError{Field: field, Value: value, Err: err}
}
