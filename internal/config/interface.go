package config

import "context"

// Loader is the interface for a format-specific network definition loader.
type Loader interface {
	// Load reads a network definition from the given path and translates it
	// into the format-agnostic model.
	Load(ctx context.Context, path string) (*NetDef, error)
}
