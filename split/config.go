package split

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const (
	// IndexPlaceholder is replaced by the directory index in PrefixFormat.
	IndexPlaceholder = "{}"

	// DefaultPrefixFormat names target directories part_0, part_1, ...
	DefaultPrefixFormat = "part_" + IndexPlaceholder

	// PatternTimeout bounds a single pattern evaluation.
	PatternTimeout = 5 * time.Second
)

// Config describes one split. It is a value type; the With methods return
// modified copies.
type Config struct {
	// SourceDir is the directory whose files are grouped.
	SourceDir string
	// OutputDir holds the target directories. Empty means SourceDir.
	OutputDir string
	// NumDirs is the number of target directories, at least 1.
	NumDirs int
	// PrefixFormat has every IndexPlaceholder replaced by the directory index.
	PrefixFormat string
	// SuffixFormat is appended verbatim after the prefix.
	SuffixFormat string
	// Patterns select accompanying files for RegexMatcher.
	Patterns []*regexp2.Regexp
}

// NewConfig returns a Config with the default naming and no patterns.
func NewConfig(sourceDir string, numDirs int) Config {
	return Config{
		SourceDir:    sourceDir,
		NumDirs:      numDirs,
		PrefixFormat: DefaultPrefixFormat,
	}
}

// WithOutputDir places the target directories under dir.
func (c Config) WithOutputDir(dir string) Config {
	c.OutputDir = dir
	return c
}

// WithNaming sets the prefix and suffix templates.
func (c Config) WithNaming(prefix, suffix string) Config {
	c.PrefixFormat = prefix
	c.SuffixFormat = suffix
	return c
}

// WithPatterns sets the accompanying-file patterns, in evaluation order.
func (c Config) WithPatterns(patterns ...*regexp2.Regexp) Config {
	c.Patterns = slices.Clone(patterns)
	return c
}

// Output returns the directory the target directories are created in.
func (c Config) Output() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return c.SourceDir
}

// DirName returns the name of the i-th target directory.
func (c Config) DirName(i int) string {
	return strings.ReplaceAll(c.PrefixFormat, IndexPlaceholder, strconv.Itoa(i)) + c.SuffixFormat
}

// TargetDirs returns the paths of all target directories in index order.
// Nothing is created.
func (c Config) TargetDirs() []string {
	if c.NumDirs < 1 {
		return nil
	}
	out := c.Output()
	dirs := make([]string, c.NumDirs)
	for i := range dirs {
		dirs[i] = filepath.Join(out, c.DirName(i))
	}
	return dirs
}

// Validate checks the configuration without touching the filesystem.
func (c Config) Validate() error {
	if c.NumDirs < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDirCount, c.NumDirs)
	}
	if c.SourceDir == "" {
		return ErrNoSource
	}
	name := c.DirName(0)
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: templates produce %q", ErrInvalidNaming, name)
	case strings.ContainsRune(name, os.PathSeparator), strings.ContainsRune(name, '/'):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidNaming, name)
	case c.NumDirs > 1 && !strings.Contains(c.PrefixFormat, IndexPlaceholder):
		return fmt.Errorf("%w: prefix %q has no %s placeholder", ErrInvalidNaming, c.PrefixFormat, IndexPlaceholder)
	}
	return nil
}

// CompilePatterns compiles accompanying-file patterns in order.
func CompilePatterns(exprs ...string) ([]*regexp2.Regexp, error) {
	patterns := make([]*regexp2.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp2.Compile(expr, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
		}
		re.MatchTimeout = PatternTimeout
		patterns = append(patterns, re)
	}
	return patterns, nil
}
