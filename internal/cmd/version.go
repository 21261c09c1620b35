package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dendrascience/dirsplit/util"
	"github.com/dendrascience/dirsplit/version"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return util.WriteJSON(cmd.OutOrStdout(), version.GetInfo())
			}
			version.PrintVersion(cmd.OutOrStdout(), "dirsplit")
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
