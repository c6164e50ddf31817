package filter

import "errors"

var (
	// ErrUnknownMatcher indicates a matcher name with no strategy behind it
	ErrUnknownMatcher = errors.New("filter: unknown matcher")
)
