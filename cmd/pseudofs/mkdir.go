package main

import (
	"github.com/spf13/cobra"

	"pseudofs/fs"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir a1",
	Short: "Create directory.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs.Mkdir(session, args[0])
		return nil
	},
}

func init() { rootCmd.AddCommand(mkdirCmd) }
