package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dendrascience/dirsplit/split"
	"github.com/dendrascience/dirsplit/util"
)

func (a *app) newSplitCmd() *cobra.Command {
	var (
		dryRun bool
		asJSON bool
		record string
	)

	cmd := &cobra.Command{
		Use:   "split SOURCE",
		Short: "Distribute file groups into target directories",
		Long: `Split the files of SOURCE across --dirs target directories.

Every file selected by --match (or --ext) becomes the representative of a
group. Sibling files whose full path matches any --pattern travel with it.
Groups are dealt out round-robin to the target directories, which are
named from --prefix and --suffix and created under --output.

Example:
  dirsplit split ./recordings -n 4 -e wav -p '.*\.(txt|json)$'`,
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
			out := cmd.OutOrStdout()

			plan, err := s.Plan(cmd.Context())
			if err != nil {
				return err
			}
			if dryRun {
				if asJSON {
					return util.WriteJSON(out, plan.Summary())
				}
				printPlan(out, plan)
				return nil
			}

			dirs, err := s.Apply(cmd.Context(), plan)
			if err != nil {
				if len(dirs) > 0 {
					color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(),
						"split failed after creating %d directories; run `dirsplit cleanup` with the same flags to remove them\n", len(dirs))
				}
				return err
			}
			if record != "" {
				if err := util.WriteToFile(record, strings.Join(dirs, "\n")+"\n"); err != nil {
					return fmt.Errorf("failed to record directories: %w", err)
				}
			}
			if asJSON {
				return util.WriteJSON(out, plan.Summary())
			}
			printCreated(out, plan, dirs)
			return nil
		},
	}

	addSplitFlags(cmd.Flags())
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the plan without creating anything")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan summary as JSON")
	cmd.Flags().StringVar(&record, "record", "", "write the created directories to this file, one per line")

	return cmd
}

func printPlan(w io.Writer, plan *split.Plan) {
	cyan := color.New(color.FgCyan, color.Bold)
	summary := plan.Summary()

	cyan.Fprintf(w, "Plan: %d groups, %d files\n", summary.Groups, summary.Files)
	for i, d := range summary.Directories {
		fmt.Fprintf(w, "  %s: %d groups, %d files\n", d.Path, d.Groups, d.Files)
		for _, g := range plan.GroupsFor(i) {
			fmt.Fprintf(w, "    %s", filepath.Base(g.Representative))
			if extra := len(g.Members) - 1; extra > 0 {
				fmt.Fprintf(w, " (+%d)", extra)
			}
			fmt.Fprintln(w)
		}
	}
}

func printCreated(w io.Writer, plan *split.Plan, dirs []string) {
	green := color.New(color.FgGreen)
	summary := plan.Summary()

	green.Fprintf(w, "Split %d groups (%d files) into %d directories\n", summary.Groups, summary.Files, len(dirs))
	for _, d := range summary.Directories {
		fmt.Fprintf(w, "  %s: %d groups, %d files\n", d.Path, d.Groups, d.Files)
	}
}
