// Package split groups the files of a source directory and distributes the
// groups round-robin across a fixed number of target directories.
//
// A split runs in three strictly sequential phases:
//
//  1. Discover: every file under the source directory is offered to a
//     FileMatcher. Each match becomes the representative of a Group and
//     pulls its accompanying files (sidecars, metadata, subtitles...) in
//     with it. Matchers run concurrently; the group table is guarded by a
//     mutex.
//  2. Prepare: NumDirs target directories are created under the output
//     directory, named from the prefix and suffix templates.
//  3. Distribute: groups are dealt out one per directory in turn and every
//     member is copied into its directory.
//
// Plan runs only the first phase and computes the assignment, which makes
// dry runs possible; Apply performs the other two. Cleanup removes the
// directories a split created.
//
// Accompanying files are found by a FileMatcher. RegexMatcher compares
// sibling paths against an ordered list of regexp2 patterns, so patterns
// may use look-around and back-references.
package split
