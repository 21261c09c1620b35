package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dendrascience/dirsplit/util"
	"github.com/dendrascience/dirsplit/walk"
)

func (a *app) newWalkCmd() *cobra.Command {
	var (
		ext       string
		multiline bool
		missing   string
		edit      bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "walk [ROOT]",
		Short: "List the files the filtered walker finds",
		Long: `List regular files under ROOT with extension --ext, skipping hidden
entries, .git and target directories. The extension is matched
case-sensitively; "*" matches every file. With --missing only files whose
content lacks the given text are listed, for example sources without a
required header line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			ext = strings.TrimPrefix(ext, ".")

			var files []string
			for path := range walk.Files(root, ext, walk.WithLogger(a.logger)) {
				if multiline {
					ok, err := util.HasMultipleLines(path)
					if err != nil {
						a.logger.Debug("skipping unreadable file", "path", path, "error", err)
						continue
					}
					if !ok {
						continue
					}
				}
				if missing != "" {
					ok, err := util.ContainsText(path, missing)
					if err != nil {
						a.logger.Debug("skipping unreadable file", "path", path, "error", err)
						continue
					}
					if ok {
						continue
					}
				}
				files = append(files, path)
			}

			if output != "" {
				content := strings.Join(files, "\n")
				if len(files) > 0 {
					content += "\n"
				}
				if err := util.WriteToFile(output, content); err != nil {
					return err
				}
			} else {
				for _, f := range files {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
			}

			if edit && len(files) > 0 {
				return util.OpenInEditor(cmd.Context(), files)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&ext, "ext", "e", walk.Wildcard, "extension to list, without the dot")
	cmd.Flags().BoolVar(&multiline, "multiline", false, "only list files with more than one line")
	cmd.Flags().StringVar(&missing, "missing", "", "only list files whose content does not contain this text")
	cmd.Flags().BoolVar(&edit, "edit", false, "open the listed files in $EDITOR")
	cmd.Flags().StringVar(&output, "write", "", "write the list to this file instead of stdout")

	return cmd
}
