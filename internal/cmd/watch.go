package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dendrascience/dirsplit/split"
	"github.com/dendrascience/dirsplit/util"
	"github.com/dendrascience/dirsplit/walk"
)

func (a *app) newWatchCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "watch SOURCE",
		Short: "Re-plan a split whenever the source changes",
		Long: `Watch SOURCE and print the split plan again whenever files are added,
removed or renamed. Changes are debounced by --debounce. Nothing is
created or copied. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			s, err := a.newSplitter(source)
			if err != nil {
				return err
			}
			delay, err := time.ParseDuration(a.v.GetString(keyDebounce))
			if err != nil {
				return fmt.Errorf("invalid --debounce: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			show := func(w io.Writer, plan *split.Plan) error {
				if asJSON {
					return util.WriteJSON(w, plan.Summary())
				}
				printPlan(w, plan)
				return nil
			}
			return a.watch(ctx, s, delay, cmd.OutOrStdout(), show)
		},
	}

	addSplitFlags(cmd.Flags())
	cmd.Flags().String(keyDebounce, "500ms", "quiet period before re-planning")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print plan summaries as JSON")

	return cmd
}

type planPrinter func(w io.Writer, plan *split.Plan) error

// watch prints a plan immediately and again after every debounced batch
// of changes, until ctx is done.
func (a *app) watch(ctx context.Context, s *split.Splitter, delay time.Duration, w io.Writer, show planPrinter) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	targets := s.TargetDirs()
	source := s.Config().SourceDir
	for entry := range walk.Entries(source, walk.WithExclude(targets...), walk.WithLogger(a.logger)) {
		if entry.IsDir() {
			if err := watcher.Add(entry.Path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", entry.Path, err)
			}
		}
	}

	replan := func() error {
		plan, err := s.Plan(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		return show(w, plan)
	}
	if err := replan(); err != nil {
		return err
	}

	timer := time.NewTimer(delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !a.relevant(event, targets) {
				continue
			}
			if event.Has(fsnotify.Create) {
				a.watchNewDir(watcher, event.Name)
			}
			timer.Reset(delay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("file watcher error", "error", err)
		case <-timer.C:
			if err := replan(); err != nil {
				return err
			}
		}
	}
}

// relevant drops events for content changes and for paths the splitter
// never looks at.
func (a *app) relevant(event fsnotify.Event, targets []string) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if walk.Excluded(filepath.Base(event.Name)) {
		return false
	}
	for _, t := range targets {
		if pathContains(t, event.Name) {
			return false
		}
	}
	a.logger.Debug("source changed", "path", event.Name, "op", event.Op.String())
	return true
}

func (a *app) watchNewDir(watcher *fsnotify.Watcher, path string) {
	for entry := range walk.Entries(path, walk.WithLogger(a.logger)) {
		if !entry.IsDir() {
			continue
		}
		if err := watcher.Add(entry.Path); err != nil {
			a.logger.Warn("failed to watch new directory", "path", entry.Path, "error", err)
		}
	}
}
