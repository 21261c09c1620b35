package cmd

import (
	"cmp"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dendrascience/dirsplit/util"
	"github.com/dendrascience/dirsplit/walk"
)

// NoExtension labels files without an extension in count output.
const NoExtension = "(none)"

func (a *app) newCountCmd() *cobra.Command {
	var (
		showProgress bool
		all          bool
	)

	cmd := &cobra.Command{
		Use:   "count [PATH]",
		Short: "Count files in a directory tree",
		Long: `Count the files in a directory tree, per extension.

Only files the splitter would see are counted: hidden entries, .git and
target directories are skipped. With --all every file is counted and no
breakdown is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			out := cmd.OutOrStdout()

			if all {
				count, err := util.CountFiles(path)
				if err != nil {
					return fmt.Errorf("error counting files: %w", err)
				}
				fmt.Fprintf(out, "Total files: %d\n", count)
				return nil
			}

			total, byExt := a.countByExtension(out, path, showProgress)
			printCounts(out, total, byExt)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show progress every 10,000 files")
	cmd.Flags().BoolVar(&all, "all", false, "Count every file, including hidden and excluded trees")

	return cmd
}

func (a *app) countByExtension(w io.Writer, root string, showProgress bool) (int, map[string]int) {
	byExt := make(map[string]int)
	total := 0
	for entry := range walk.Entries(root, walk.WithLogger(a.logger)) {
		if !entry.IsRegular() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == "" {
			ext = NoExtension
		}
		byExt[ext]++
		total++
		if showProgress && total%10000 == 0 {
			fmt.Fprintf(w, "Progress: %d files counted\n", total)
		}
	}
	return total, byExt
}

func printCounts(w io.Writer, total int, byExt map[string]int) {
	type row struct {
		ext   string
		count int
	}
	rows := make([]row, 0, len(byExt))
	for ext, n := range byExt {
		rows = append(rows, row{ext, n})
	}
	slices.SortFunc(rows, func(x, y row) int {
		return cmp.Or(cmp.Compare(y.count, x.count), cmp.Compare(x.ext, y.ext))
	})

	cyan := color.New(color.FgCyan)
	for _, r := range rows {
		cyan.Fprintf(w, "%-12s", r.ext)
		fmt.Fprintf(w, " %d\n", r.count)
	}
	fmt.Fprintf(w, "Total files: %d\n", total)
}
