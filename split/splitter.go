package split

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/dendrascience/dirsplit/util"
	"github.com/dendrascience/dirsplit/walk"
)

// Splitter runs splits for one configuration and matcher.
type Splitter struct {
	cfg     Config
	matcher FileMatcher
	logger  *slog.Logger
	limit   int
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithLogger routes diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Splitter) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConcurrency bounds the number of matcher calls in flight during
// discovery. Zero means no bound.
func WithConcurrency(n int) Option {
	return func(s *Splitter) {
		s.limit = n
	}
}

// New validates cfg and returns a Splitter. It performs no I/O, so an
// invalid configuration fails before anything is created.
func New(cfg Config, matcher FileMatcher, opts ...Option) (*Splitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if matcher == nil {
		return nil, ErrNoMatcher
	}
	s := &Splitter{
		cfg:     cfg,
		matcher: matcher,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the configuration the Splitter was built with.
func (s *Splitter) Config() Config {
	return s.cfg
}

// TargetDirs returns the target directory paths a split would create.
func (s *Splitter) TargetDirs() []string {
	return s.cfg.TargetDirs()
}

// Split discovers, groups and distributes the source files, returning the
// target directories in creation order. On failure the directories created
// so far are returned with the error so the caller can clean them up.
func (s *Splitter) Split(ctx context.Context) ([]string, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, plan)
}

// Plan runs discovery and assigns every group to a target directory
// without creating or copying anything. Two files from different source
// directories that would land under one name in the same target fail the
// plan with ErrNameCollision.
func (s *Splitter) Plan(ctx context.Context) (*Plan, error) {
	info, err := os.Stat(s.cfg.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to access source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", util.ErrExpectedDirectory, s.cfg.SourceDir)
	}

	s.logger.Info("scanning for files", "source", s.cfg.SourceDir)
	groups, err := s.discover(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("grouped files", "groups", len(groups))
	plan := newPlan(groups, s.cfg.TargetDirs())
	if err := plan.checkNames(); err != nil {
		return nil, err
	}
	return plan, nil
}

// Apply creates the target directories and copies every group of plan
// into its assigned directory. The output directory is locked for the
// duration. The first failure aborts the remaining work and is returned
// along with the directories created so far.
func (s *Splitter) Apply(ctx context.Context, plan *Plan) ([]string, error) {
	if !plan.valid(s.cfg.NumDirs) {
		return nil, ErrInvalidPlan
	}
	if err := plan.checkNames(); err != nil {
		return nil, err
	}

	output := s.cfg.Output()
	if err := os.MkdirAll(output, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", output, err)
	}
	lock, err := acquireLock(output)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.release(); err != nil {
			s.logger.Warn("releasing output lock", "error", err)
		}
	}()

	created, err := s.prepareTargets(ctx, plan.Targets)
	if err != nil {
		return created, err
	}
	return created, s.distribute(ctx, plan, created)
}

// Cleanup removes dirs recursively and concurrently. Every removal is
// attempted; the first failure is returned. A directory that no longer
// exists is a failure wrapping fs.ErrNotExist.
func (s *Splitter) Cleanup(ctx context.Context, dirs []string) error {
	s.logger.Info("starting cleanup", "directories", len(dirs))
	var g errgroup.Group
	for _, dir := range dirs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			s.logger.Debug("removing directory", "path", dir)
			if _, err := os.Lstat(dir); err != nil {
				return fmt.Errorf("failed to remove directory %s: %w", dir, err)
			}
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("failed to remove directory %s: %w", dir, err)
			}
			return nil
		})
	}
	return errors.Join(g.Wait(), ctx.Err())
}

func (s *Splitter) discover(ctx context.Context) ([]Group, error) {
	table := newGroupTable()
	handler := func(ctx context.Context, path string) error {
		ok, err := s.matcher.IsMatch(ctx, path)
		if err != nil || !ok {
			return err
		}
		if filepath.Ext(path) == "" {
			s.logger.Debug("skipping match without extension", "path", path)
			return nil
		}
		accompanying, err := s.matcher.FindAccompanyingFiles(ctx, path)
		if err != nil {
			return err
		}
		s.logger.Debug("found matching file", "path", path, "accompanying", len(accompanying))
		table.add(path, accompanying)
		return nil
	}

	err := walk.WalkFiltered(ctx, s.cfg.SourceDir, walk.Wildcard, handler,
		walk.WithLogger(s.logger),
		walk.WithExclude(s.cfg.TargetDirs()...),
		walk.WithLimit(s.limit),
	)
	if err != nil {
		return nil, err
	}
	return table.finalize(), nil
}

func (s *Splitter) prepareTargets(ctx context.Context, targets []string) ([]string, error) {
	created := make([]string, 0, len(targets))
	for _, dir := range targets {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		s.logger.Debug("creating directory", "path", dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return created, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		created = append(created, dir)
	}
	return created, nil
}

func (s *Splitter) distribute(ctx context.Context, plan *Plan, created []string) error {
	s.logger.Info("distributing file groups", "groups", len(plan.Groups), "directories", len(created))
	for i, group := range plan.Groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := created[plan.Assignments[i]]
		s.logger.Debug("processing group", "representative", group.Representative, "files", len(group.Members), "target", target)
		for _, file := range group.Members {
			dst := filepath.Join(target, fileName(file))
			if err := util.CopyFile(file, dst); err != nil {
				return fmt.Errorf("failed to copy %s to %s: %w", file, dst, err)
			}
		}
	}
	return nil
}

// fileName returns the final element of path. Group members always name
// files, so a path without one is a programming error.
func fileName(path string) string {
	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		panic(fmt.Sprintf("split: group member %q has no file name", path))
	}
	return name
}
