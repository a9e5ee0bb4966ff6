package engine

import "errors"

var (
	// ErrCorruptState marks snapshots that cannot be decoded into a
	// consistent level state.
	ErrCorruptState = errors.New("engine: corrupt state")

	// ErrInvalidLevel marks level descriptors with out-of-range or
	// inconsistent content.
	ErrInvalidLevel = errors.New("engine: invalid level")
)
