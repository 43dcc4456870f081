package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pseudofs/fs"
)

var lsCmd = &cobra.Command{
	Use:   "ls [a1]",
	Short: "List directory.",
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		entries, err := fs.Ls(session, path)
		if err != nil {
			return nil
		}
		for _, e := range entries {
			fmt.Println(e.String())
		}
		return nil
	},
}

func init() { rootCmd.AddCommand(lsCmd) }
