package model

import "time"

// Shared defaults used by the CLI binary and the API server.
const (
	DefaultLimit          = -1 // unbounded
	DefaultDNSTimeout     = 3 * time.Second
	DefaultResolveWorkers = 8
	DefaultSaveTimeout    = 10 * time.Second
)
