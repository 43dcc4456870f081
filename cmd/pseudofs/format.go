package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pseudofs/fs"
)

var formatCmd = &cobra.Command{
	Use:   "format [N[KB/MB/GB]]",
	Short: "Reformat image. With no argument, uses the configured default size.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size := cfg.DefaultDiskSize
		if len(args) == 1 {
			parsed, err := parseSize(args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			size = parsed
		}

		session.Close()
		fsys, err := fs.Format(imagePath, size, os.Stderr, os.Stdout)
		if err != nil {
			return fmt.Errorf("format: %w", err)
		}
		session = fsys
		return nil
	},
}

func init() { rootCmd.AddCommand(formatCmd) }

// parseSize parses a decimal size with an optional KB/MB/GB suffix
// (decimal multipliers: 1_000, 1_000_000, 1_000_000_000).
func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "KB"):
		multiplier = 1_000
		s = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1_000_000
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "GB"):
		multiplier = 1_000_000_000
		s = strings.TrimSuffix(s, "GB")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return n * multiplier, nil
}
