package main

import (
	"github.com/spf13/cobra"

	"pseudofs/fs"
)

var cdCmd = &cobra.Command{
	Use:   "cd a1",
	Short: "Change directory.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs.Cd(session, args[0])
		return nil
	},
}

func init() { rootCmd.AddCommand(cdCmd) }
