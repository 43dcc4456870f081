package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pwdCmd = &cobra.Command{
	Use:   "pwd",
	Short: "Print absolute path.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := session.Pwd()
		if err != nil {
			return nil
		}
		fmt.Println(p)
		return nil
	},
}

func init() { rootCmd.AddCommand(pwdCmd) }
