package sim

import "errors"

// ErrInvalidConfig is returned for configuration files the simulator cannot use.
var ErrInvalidConfig = errors.New("sim: invalid config")
