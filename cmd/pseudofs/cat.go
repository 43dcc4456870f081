package main

import (
	"os"

	"github.com/spf13/cobra"

	"pseudofs/fs"
)

var catCmd = &cobra.Command{
	Use:   "cat s1",
	Short: "Print file content.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := fs.Cat(session, args[0])
		if err != nil {
			return nil
		}
		os.Stdout.Write(content)
		return nil
	},
}

func init() { rootCmd.AddCommand(catCmd) }
