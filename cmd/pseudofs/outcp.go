package main

import (
	"github.com/spf13/cobra"

	"pseudofs/fs"
)

var outcpCmd = &cobra.Command{
	Use:   "outcp s1 h",
	Short: "Export image file s1 to host path h.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs.Outcp(session, args[0], args[1])
		return nil
	},
}

func init() { rootCmd.AddCommand(outcpCmd) }
