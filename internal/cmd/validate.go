package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dendrascience/dirsplit/split"
	"github.com/dendrascience/dirsplit/util"
	"github.com/dendrascience/dirsplit/walk"
)

// validation collects the problems found in one split.
type validation struct {
	Directories int      `json:"directories"`
	Files       int      `json:"files"`
	Groups      []int    `json:"groups_per_directory"`
	Problems    []string `json:"problems"`
}

func (a *app) newValidateCmd() *cobra.Command {
	var (
		verbose bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "validate SOURCE",
		Short: "Verify a completed split against its source",
		Long: `Validate the target directories of a split of SOURCE.

Every file in a target directory must have the same content as a file of
the same name in SOURCE, and the number of representative files per
target directory may differ by at most one. Pass the same flags that were
given to split.`,
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
			res, err := a.validate(cmd, s, verbose)
			if err != nil {
				return err
			}
			if asJSON {
				if err := util.WriteJSON(out, res); err != nil {
					return err
				}
			} else {
				printValidation(out, res)
			}
			if len(res.Problems) > 0 {
				return fmt.Errorf("%w: %d problems", ErrValidationFailed, len(res.Problems))
			}
			return nil
		},
	}

	addSplitFlags(cmd.Flags())
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every file checked")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func (a *app) validate(cmd *cobra.Command, s *split.Splitter, verbose bool) (*validation, error) {
	cfg := s.Config()
	targets := s.TargetDirs()
	matcher := a.matcher(cfg)

	// Index source files by name, leaving out the targets themselves.
	sources := make(map[string][]string)
	for path := range walk.Files(cfg.SourceDir, walk.Wildcard, walk.WithExclude(targets...), walk.WithLogger(a.logger)) {
		name := filepath.Base(path)
		sources[name] = append(sources[name], path)
	}

	res := &validation{Directories: len(targets), Groups: make([]int, len(targets))}
	for i, dir := range targets {
		entries, err := os.ReadDir(dir)
		if err != nil {
			res.Problems = append(res.Problems, fmt.Sprintf("cannot read %s: %v", dir, err))
			continue
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			res.Files++
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "checking %s\n", path)
			}
			if ok, err := matcher.IsMatch(cmd.Context(), path); err != nil {
				return nil, err
			} else if ok && filepath.Ext(path) != "" {
				res.Groups[i]++
			}
			if problem := checkCopy(path, sources[entry.Name()]); problem != "" {
				res.Problems = append(res.Problems, problem)
			}
		}
	}

	if lo, hi := spread(res.Groups); hi-lo > 1 {
		res.Problems = append(res.Problems, fmt.Sprintf("unbalanced split: directories hold between %d and %d groups", lo, hi))
	}
	return res, nil
}

// checkCopy returns a description of the problem with path, or "" when
// some candidate has identical content.
func checkCopy(path string, candidates []string) string {
	if len(candidates) == 0 {
		return fmt.Sprintf("%s has no source file", path)
	}
	for _, c := range candidates {
		if same, err := util.SameContent(path, c); err == nil && same {
			return ""
		}
	}
	return fmt.Sprintf("%s differs from its source", path)
}

func spread(counts []int) (lo, hi int) {
	for i, c := range counts {
		if i == 0 || c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return lo, hi
}

func printValidation(w io.Writer, res *validation) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Fprintf(w, "Validation complete:\n")
	fmt.Fprintf(w, "  Directories checked: %d\n", res.Directories)
	fmt.Fprintf(w, "  Files checked: %d\n", res.Files)
	fmt.Fprintf(w, "  Groups per directory: %v\n", res.Groups)
	if len(res.Problems) == 0 {
		green.Fprintf(w, "  No problems found\n")
		return
	}
	red.Fprintf(w, "  Problems: %d\n", len(res.Problems))
	for _, p := range res.Problems {
		fmt.Fprintf(w, "  - %s\n", p)
	}
}
