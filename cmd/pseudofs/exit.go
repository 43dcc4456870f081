package main

import "github.com/spf13/cobra"

var exitCmd = &cobra.Command{
	Use:   "exit",
	Short: "Exit the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		quit = true
		return nil
	},
}

func init() { rootCmd.AddCommand(exitCmd) }
