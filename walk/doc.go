// Package walk provides filtered, concurrent directory traversal.
//
// The walker descends a directory tree depth-first, following symbolic
// links, and prunes every subtree rooted at an entry that is hidden, is
// version-control metadata (.git) or is a build-output directory (target).
// Pruning is decided on the entry's name alone; entries are never opened
// or read to make that decision.
//
// Key Components:
//
// Entry Predicates:
//   - IsHidden, IsGitDir and IsTargetDir classify a single name
//   - Names beginning with .tmp are not hidden, so in-progress atomic
//     writes stay visible to the walker
//
// Traversal:
//   - Entries yields every surviving entry lazily as an iter.Seq
//   - Files narrows that to regular files with a given extension, or
//     every regular file for the Wildcard extension
//   - Per-entry errors (permission denied, broken links, link loops) are
//     skipped so one bad subtree does not abort a large walk
//
// Dispatch:
//   - WalkFiltered schedules one goroutine per matched file and waits for
//     all of them before reporting the first handler failure
//
// Discovery always happens on the calling goroutine; only the handlers
// run concurrently.
package walk
