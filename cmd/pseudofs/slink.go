package main

import (
	"github.com/spf13/cobra"

	"pseudofs/fs"
)

var slinkCmd = &cobra.Command{
	Use:   "slink s1 s2",
	Short: "Create symlink s2 -> s1.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs.Slink(session, args[0], args[1])
		return nil
	},
}

func init() { rootCmd.AddCommand(slinkCmd) }
