package cmd

import "errors"

var (
	ErrValidationFailed = errors.New("split validation failed")
	ErrUnsafeCleanup    = errors.New("refusing to remove a directory containing the source")
	ErrNothingToClean   = errors.New("no target directories found")
)
