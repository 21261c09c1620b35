package walk

import (
	"log/slog"
	"path/filepath"
)

// Option configures a walk.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	exclude map[string]struct{}
	limit   int
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:  slog.New(slog.DiscardHandler),
		exclude: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger routes traversal diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithExclude prunes the given directories in addition to the names
// rejected by Excluded. Relative paths are resolved against the working
// directory.
func WithExclude(paths ...string) Option {
	return func(o *options) {
		for _, p := range paths {
			if abs, err := filepath.Abs(p); err == nil {
				o.exclude[abs] = struct{}{}
			}
		}
	}
}

// WithLimit bounds the number of handlers WalkFiltered runs at once.
// Zero or a negative value means no bound.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

func (o *options) pruned(path, name string) bool {
	if Excluded(name) {
		return true
	}
	_, ok := o.exclude[path]
	return ok
}
