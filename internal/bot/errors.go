package bot

import "errors"

// ErrUnknownMode is returned when a strategy is requested for a mode the factory cannot build.
var ErrUnknownMode = errors.New("unknown bot mode")
