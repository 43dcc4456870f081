package main

import (
	"github.com/spf13/cobra"

	"pseudofs/fs"
)

var rmdirCmd = &cobra.Command{
	Use:   "rmdir a1",
	Short: "Remove empty directory.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs.Rmdir(session, args[0])
		return nil
	},
}

func init() { rootCmd.AddCommand(rmdirCmd) }
