package main

import (
	"github.com/spf13/cobra"

	"pseudofs/fs"
)

var cpCmd = &cobra.Command{
	Use:   "cp s1 s2",
	Short: "Copy file s1 to s2.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs.Cp(session, args[0], args[1])
		return nil
	},
}

func init() { rootCmd.AddCommand(cpCmd) }
