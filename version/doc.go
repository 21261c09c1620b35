// Package version provides version information and build metadata for dirsplit.
//
// Version information comes from, in order of preference:
//   - Compile-time variables (Version, Commit, Date) set via -ldflags
//   - Runtime build info from debug.ReadBuildInfo()
//   - Fallback defaults for development builds
//
// Build Integration:
//
//	go build -ldflags "-X github.com/dendrascience/dirsplit/version.Version=v1.0.0 -X github.com/dendrascience/dirsplit/version.Commit=abc1234def"
//
// The version is reported by "dirsplit version", the root --version flag
// and in split plan summaries.
package version
