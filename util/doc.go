// Package util provides the file I/O layer used by dirsplit.
//
// These are thin, stateless helpers around the filesystem that the walker
// and the splitter build on. None of them keep state between calls.
//
// Key Components:
//
// Reading and Writing:
//   - ReadFileContent and ReadLines for whole-file and per-line reads
//   - WriteToFile writes through a ".tmp-" sibling and renames it into
//     place, so readers never observe a partial file
//   - CopyFile copies a single file, preserving its permission bits
//
// Bulk Operations:
//   - DeleteFilesWithExtension removes matching files concurrently
//   - CountFiles counts regular files under a directory
//   - HasMultipleLines reports files spanning more than one line
//
// Hashing:
//   - SHA-256 content hashing for verifying copies
//   - Bucket maps a name onto one of n buckets using a color hash
//
// Output:
//   - WriteJSON encodes reports for machine consumption
//   - OpenInEditor hands a list of files to the user's editor
package util
