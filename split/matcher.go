package split

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/dlclark/regexp2"
)

// FileMatcher decides which files represent a group and which siblings
// travel with them. Both methods may perform I/O and are called
// concurrently.
type FileMatcher interface {
	// IsMatch reports whether path should represent a group.
	IsMatch(ctx context.Context, path string) (bool, error)
	// FindAccompanyingFiles lists the files that belong with path.
	FindAccompanyingFiles(ctx context.Context, path string) ([]string, error)
}

// MatchFunc decides whether a path represents a group.
type MatchFunc func(path string) (bool, error)

// AccompanyFunc lists the files that belong with a representative.
type AccompanyFunc func(ctx context.Context, path string) ([]string, error)

// RegexMatcher selects representatives with Match and accompanying files
// with Patterns: a regular file in the representative's directory is
// included when its full path matches any pattern. Patterns are tried in
// order and the first match wins.
type RegexMatcher struct {
	Match    MatchFunc
	Patterns []*regexp2.Regexp
}

// NewRegexMatcher returns a RegexMatcher using match and patterns.
func NewRegexMatcher(match MatchFunc, patterns ...*regexp2.Regexp) *RegexMatcher {
	return &RegexMatcher{Match: match, Patterns: patterns}
}

// IsMatch implements FileMatcher.
func (m *RegexMatcher) IsMatch(ctx context.Context, path string) (bool, error) {
	if m.Match == nil {
		return false, ErrNoMatchFunc
	}
	return m.Match(path)
}

// FindAccompanyingFiles implements FileMatcher. Siblings are returned in
// lexical order.
func (m *RegexMatcher) FindAccompanyingFiles(ctx context.Context, path string) ([]string, error) {
	if len(m.Patterns) == 0 {
		return nil, nil
	}
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var accompanying []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sibling := filepath.Join(dir, entry.Name())
		info, err := os.Stat(sibling)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		for _, pattern := range m.Patterns {
			ok, err := pattern.MatchString(sibling)
			if err != nil {
				return nil, fmt.Errorf("%w: %s against %s: %v", ErrPattern, pattern, sibling, err)
			}
			if ok {
				accompanying = append(accompanying, sibling)
				break
			}
		}
	}
	return accompanying, nil
}

// FuncMatcher is a FileMatcher built entirely from closures. A nil
// Accompany means groups never have accompanying files.
type FuncMatcher struct {
	Match     MatchFunc
	Accompany AccompanyFunc
}

// IsMatch implements FileMatcher.
func (m FuncMatcher) IsMatch(ctx context.Context, path string) (bool, error) {
	if m.Match == nil {
		return false, ErrNoMatchFunc
	}
	return m.Match(path)
}

// FindAccompanyingFiles implements FileMatcher.
func (m FuncMatcher) FindAccompanyingFiles(ctx context.Context, path string) ([]string, error) {
	if m.Accompany == nil {
		return nil, nil
	}
	return m.Accompany(ctx, path)
}

// MatchAll matches every file.
func MatchAll(string) (bool, error) {
	return true, nil
}

// MatchExtensions matches files whose extension, without the dot, is one
// of exts. The comparison is case-sensitive.
func MatchExtensions(exts ...string) MatchFunc {
	return func(path string) (bool, error) {
		ext := filepath.Ext(path)
		return ext != "" && slices.Contains(exts, ext[1:]), nil
	}
}

// MatchGlob matches files whose base name matches a filepath.Match
// pattern such as "*.log".
func MatchGlob(pattern string) MatchFunc {
	return func(path string) (bool, error) {
		ok, err := filepath.Match(pattern, filepath.Base(path))
		if err != nil {
			return false, fmt.Errorf("%w: %q: %v", ErrPattern, pattern, err)
		}
		return ok, nil
	}
}
