package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dendrascience/dirsplit/util"
)

func (a *app) newCleanupCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "cleanup SOURCE",
		Short: "Remove the target directories of a split",
		Long: `Remove the target directories a split of SOURCE created.

The directory names are recomputed from the same flags that were given to
split, or read from a file written by split --record. Directories that do
not exist are skipped. A directory that contains SOURCE is never removed.`,
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

			targets := s.TargetDirs()
			if from != "" {
				if targets, err = util.ReadLines(from); err != nil {
					return fmt.Errorf("failed to read directory list: %w", err)
				}
			}

			var dirs []string
			for _, dir := range targets {
				if dir == "" {
					continue
				}
				if pathContains(dir, source) {
					return fmt.Errorf("%w: %s", ErrUnsafeCleanup, dir)
				}
				if _, err := os.Lstat(dir); err != nil {
					a.logger.Debug("target directory not present", "path", dir)
					continue
				}
				dirs = append(dirs, dir)
			}
			if len(dirs) == 0 {
				return ErrNothingToClean
			}

			if err := s.Cleanup(cmd.Context(), dirs); err != nil {
				return err
			}
			green := color.New(color.FgGreen)
			for _, dir := range dirs {
				green.Fprintf(cmd.OutOrStdout(), "removed %s\n", dir)
			}
			return nil
		},
	}

	addSplitFlags(cmd.Flags())
	cmd.Flags().StringVar(&from, "from", "", "read the directories to remove from this file")

	return cmd
}

// pathContains reports whether child is parent or lies beneath it.
// Relative paths are resolved against the working directory.
func pathContains(parent, child string) bool {
	absParent, err := filepath.Abs(parent)
	if err != nil {
		absParent = filepath.Clean(parent)
	}
	absChild, err := filepath.Abs(child)
	if err != nil {
		absChild = filepath.Clean(child)
	}
	if absParent == absChild {
		return true
	}
	rel, err := filepath.Rel(absParent, absChild)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
