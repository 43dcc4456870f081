// Command pseudofs mounts a single image file and serves an interactive
// shell of file system commands over it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: pseudofs <image-path>")
		os.Exit(1)
	}

	if err := Run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "pseudofs: %v\n", err)
		os.Exit(1)
	}
}
