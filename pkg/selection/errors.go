package selection

import "errors"

var (
	// ErrStoreUnavailable indicates the durable store could not be probed or written
	ErrStoreUnavailable = errors.New("selection: store unavailable")

	// ErrStoreClosed indicates an operation on a closed store
	ErrStoreClosed = errors.New("selection: store closed")
)
