package walk

import "strings"

// Wildcard is the extension that accepts every regular file.
const Wildcard = "*"

const tmpPrefix = ".tmp"

// IsHidden reports whether name is a dot-prefixed entry. The special
// entries "." and ".." are not hidden, and neither is anything starting
// with ".tmp" so temporary files from atomic writes remain observable.
func IsHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".") && !strings.HasPrefix(name, tmpPrefix)
}

// IsGitDir reports whether name is a git metadata directory.
func IsGitDir(name string) bool {
	return name == ".git"
}

// IsTargetDir reports whether name is a build-output directory.
func IsTargetDir(name string) bool {
	return name == "target"
}

// Excluded reports whether a subtree rooted at name is pruned from walks.
func Excluded(name string) bool {
	return IsHidden(name) || IsGitDir(name) || IsTargetDir(name)
}
