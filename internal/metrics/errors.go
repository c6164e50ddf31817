package metrics

import "errors"

// ErrNoRegistry is returned when metrics were registered on an external registerer
var ErrNoRegistry = errors.New("metrics: no private registry")
