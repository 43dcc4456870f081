package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load f",
	Short: "Execute commands from host file f.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hostFile, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return nil
		}
		defer hostFile.Close()

		scanner := bufio.NewScanner(hostFile)
		for scanner.Scan() {
			if !runLine(scanner.Text()) {
				break
			}
		}
		return scanner.Err()
	},
}

func init() { rootCmd.AddCommand(loadCmd) }
