package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate image consistency.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := session.Check()
		if err != nil {
			return nil
		}
		fmt.Println(status)
		return nil
	},
}

func init() { rootCmd.AddCommand(checkCmd) }
