package detail

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates no record owns the requested identifier
var ErrNotFound = errors.New("detail: not found")

// NotFoundError carries the identifier that matched no record.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return "detail: no identifier requested"
	}
	return fmt.Sprintf("detail: no record with id %q", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
