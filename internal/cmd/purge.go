package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dendrascience/dirsplit/util"
)

func (a *app) newPurgeCmd() *cobra.Command {
	var ext string

	cmd := &cobra.Command{
		Use:   "purge ROOT",
		Short: "Delete every file with an extension",
		Long: `Delete every regular file under ROOT whose extension is --ext, ignoring
case. Unlike walk, purge descends into hidden and excluded directories.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ext == "" {
				return errors.New("--ext is required")
			}
			n, err := util.DeleteFilesWithExtension(cmd.Context(), args[0], ext, a.logger)
			if err != nil {
				return fmt.Errorf("removed %d files before failing: %w", n, err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Removed %d files\n", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&ext, "ext", "e", "", "extension to delete (required)")
	cmd.MarkFlagRequired("ext")

	return cmd
}
