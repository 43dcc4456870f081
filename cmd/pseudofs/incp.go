package main

import (
	"github.com/spf13/cobra"

	"pseudofs/fs"
)

var incpCmd = &cobra.Command{
	Use:   "incp h [s1]",
	Short: "Import host file h into the image, optionally as s1.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := ""
		if len(args) == 2 {
			dest = args[1]
		}
		fs.Incp(session, args[0], dest)
		return nil
	},
}

func init() { rootCmd.AddCommand(incpCmd) }
