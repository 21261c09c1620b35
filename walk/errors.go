package walk

import "errors"

// Sentinel errors for package walk.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// ErrHandlerPanic is reported when a handler panics instead of returning.
	ErrHandlerPanic = errors.New("handler panicked")

	// ErrSymlinkLoop marks a link that points back at one of its ancestors.
	ErrSymlinkLoop = errors.New("symbolic link loop")
)
