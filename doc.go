// Package main provides the dirsplit command-line interface.
//
// dirsplit partitions the files of a source directory across a fixed
// number of target directories. Each file selected by a match rule forms a
// group with its accompanying siblings, and groups are dealt out
// round-robin so the target directories stay balanced.
//
// The main binary supports multiple subcommands:
//   - split: Distribute file groups into target directories
//   - cleanup: Remove the target directories of a split
//   - validate: Verify a completed split
//   - watch: Re-plan a split when the source changes
//   - walk, count, purge, seed: Directory utilities
package main
