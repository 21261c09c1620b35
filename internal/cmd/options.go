package cmd

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dendrascience/dirsplit/split"
	"github.com/dendrascience/dirsplit/walk"
)

// Configuration keys. Each matches the flag that sets it.
const (
	keyDirs      = "dirs"
	keyOutput    = "output"
	keyPrefix    = "prefix"
	keySuffix    = "suffix"
	keyPattern   = "pattern"
	keyMatch     = "match"
	keyExt       = "ext"
	keyJobs      = "jobs"
	keyDebounce  = "debounce"
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
	keyLogSource = "log-source"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyDirs, 2)
	v.SetDefault(keyOutput, "")
	v.SetDefault(keyPrefix, split.DefaultPrefixFormat)
	v.SetDefault(keySuffix, "")
	v.SetDefault(keyPattern, []string{})
	v.SetDefault(keyMatch, walk.Wildcard)
	v.SetDefault(keyExt, []string{})
	v.SetDefault(keyJobs, 0)
	v.SetDefault(keyDebounce, "500ms")
	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyLogFormat, "text")
	v.SetDefault(keyLogSource, false)
}

// addSplitFlags registers the flags that describe a split. Commands that
// act on an existing split take the same flags so they compute the same
// target directories.
func addSplitFlags(fs *pflag.FlagSet) {
	fs.IntP(keyDirs, "n", 2, "number of target directories")
	fs.StringP(keyOutput, "o", "", "directory to create the target directories in (default is the source)")
	fs.String(keyPrefix, split.DefaultPrefixFormat, "target directory name prefix; "+split.IndexPlaceholder+" is replaced by the index")
	fs.String(keySuffix, "", "target directory name suffix, appended verbatim")
	fs.StringArrayP(keyPattern, "p", nil, "regular expression selecting accompanying files (repeatable)")
	fs.StringP(keyMatch, "m", walk.Wildcard, "glob selecting representative files by base name")
	fs.StringArrayP(keyExt, "e", nil, "extension selecting representative files, overrides --match (repeatable)")
	fs.Int(keyJobs, 0, "maximum concurrent matcher calls (0 means unbounded)")
}

// splitConfig builds the split configuration for source from the bound
// configuration.
func (a *app) splitConfig(source string) (split.Config, error) {
	patterns, err := split.CompilePatterns(a.v.GetStringSlice(keyPattern)...)
	if err != nil {
		return split.Config{}, err
	}
	cfg := split.NewConfig(source, a.v.GetInt(keyDirs)).
		WithOutputDir(a.v.GetString(keyOutput)).
		WithNaming(a.v.GetString(keyPrefix), a.v.GetString(keySuffix)).
		WithPatterns(patterns...)
	return cfg, nil
}

// matcher returns the representative rule: extensions if any were given,
// else the glob.
func (a *app) matcher(cfg split.Config) *split.RegexMatcher {
	var match split.MatchFunc = split.MatchAll
	if exts := a.v.GetStringSlice(keyExt); len(exts) > 0 {
		match = split.MatchExtensions(exts...)
	} else if glob := a.v.GetString(keyMatch); glob != walk.Wildcard {
		match = split.MatchGlob(glob)
	}
	return split.NewRegexMatcher(match, cfg.Patterns...)
}

func (a *app) newSplitter(source string) (*split.Splitter, error) {
	cfg, err := a.splitConfig(source)
	if err != nil {
		return nil, err
	}
	return split.New(cfg, a.matcher(cfg),
		split.WithLogger(a.logger),
		split.WithConcurrency(a.v.GetInt(keyJobs)),
	)
}
