package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pseudofs/fs"
)

var infoCmd = &cobra.Command{
	Use:   "info x",
	Short: "Dump inode info.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := fs.Info(session, args[0])
		if err != nil {
			return nil
		}
		fmt.Printf("id=%d parent=%d kind=%s size=%d\n", result.InodeID, result.ParentID, result.Kind, result.Size)
		if result.Clusters != nil {
			fmt.Printf("clusters=%v\n", result.Clusters)
		}
		return nil
	},
}

func init() { rootCmd.AddCommand(infoCmd) }
