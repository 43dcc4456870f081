package main

import (
	"github.com/spf13/cobra"

	"pseudofs/fs"
)

var rmCmd = &cobra.Command{
	Use:   "rm s1",
	Short: "Remove file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs.Rm(session, args[0])
		return nil
	},
}

func init() { rootCmd.AddCommand(rmCmd) }
