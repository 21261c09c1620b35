package split

import "errors"

// Sentinel errors for package split.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Configuration errors
	ErrInvalidDirCount = errors.New("number of target directories must be at least 1")
	ErrNoSource        = errors.New("source directory is required")
	ErrInvalidNaming   = errors.New("invalid target directory naming")
	ErrNoMatcher       = errors.New("file matcher is required")

	// Matcher errors
	ErrNoMatchFunc = errors.New("matcher has no match function")
	ErrPattern     = errors.New("pattern evaluation failed")

	// Distribution errors
	ErrSplitInProgress = errors.New("another split holds the output directory")
	ErrInvalidPlan     = errors.New("plan does not fit the split configuration")
	ErrNameCollision   = errors.New("two files share a name in one target directory")
)
