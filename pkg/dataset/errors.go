package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmpty indicates a dataset source with no header row
	ErrEmpty = errors.New("dataset: empty source")

	// ErrMissingField indicates a configured field absent from the header
	ErrMissingField = errors.New("dataset: field not in header")

	// ErrDuplicateID indicates two rows normalizing to the same identifier
	ErrDuplicateID = errors.New("dataset: duplicate identifier")
)

// ParseError wraps a delimited-text parse failure with its source line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: parse line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DuplicateIDError reports identifier collisions found at load time.
type DuplicateIDError struct {
	Collisions []Collision
}

func (e *DuplicateIDError) Error() string {
	ids := make([]string, 0, len(e.Collisions))
	for _, c := range e.Collisions {
		ids = append(ids, fmt.Sprintf("%s (lines %v)", c.ID, c.Lines))
	}
	return fmt.Sprintf("dataset: %d duplicate identifier(s): %s", len(e.Collisions), strings.Join(ids, ", "))
}

func (e *DuplicateIDError) Unwrap() error {
	return ErrDuplicateID
}
