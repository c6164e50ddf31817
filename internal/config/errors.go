package config

import "errors"

// ErrInvalid marks a configuration that fails validation
var ErrInvalid = errors.New("config: invalid")
