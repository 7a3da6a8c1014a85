package engine

import "errors"

// ErrNoSessions is returned by CreateSession on an engine whose
// Capabilities().SupportsIncremental is false.
var ErrNoSessions = errors.New("engine: incremental sessions not supported")
