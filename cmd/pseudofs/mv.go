package main

import (
	"github.com/spf13/cobra"

	"pseudofs/fs"
)

var mvCmd = &cobra.Command{
	Use:   "mv s1 s2",
	Short: "Move/rename file.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs.Mv(session, args[0], args[1])
		return nil
	},
}

func init() { rootCmd.AddCommand(mvCmd) }
