package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pseudofs/fs"
	"pseudofs/internal/config"
)

// session is the single mounted image for the life of the process. There
// is exactly one per pseudofs invocation.
var session *fs.FileSystem

// imagePath is the backing file path session was last (re)mounted from,
// kept around so the format command can recreate session at a new size
// without the caller re-supplying the path.
var imagePath string

// cfg holds the session-level settings loaded once at startup.
var cfg *config.Config

// quit is set by the exit command to stop the REPL loop after the
// current rootCmd.Execute() call returns.
var quit bool

// rootCmd is built once and re-executed for every input line: cobra's
// one-shot-process model doesn't map directly onto an interactive-loop
// shell, so each line becomes its own SetArgs+Execute pass over the
// same command tree, with subcommands registered onto it via init().
var rootCmd = &cobra.Command{
	Use:           "pseudofs",
	Short:         "emulated UNIX-style file system over a single image file",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Run loads configuration, mounts path, and serves the REPL until the
// exit command or EOF on stdin.
func Run(path string) error {
	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c

	fsys, err := fs.Mount(path, os.Stderr, os.Stdout)
	if err != nil {
		return fmt.Errorf("mount %s: %w", path, err)
	}
	session = fsys
	imagePath = path
	defer session.Close()

	return runLoop(bufio.NewScanner(os.Stdin))
}

// runLoop drives the interactive REPL over stdin, printing cfg.Prompt
// before each line and stopping on the exit command or EOF.
func runLoop(scanner *bufio.Scanner) error {
	fmt.Fprint(os.Stdout, cfg.Prompt)
	for scanner.Scan() {
		if !runLine(scanner.Text()) {
			return nil
		}
		fmt.Fprint(os.Stdout, cfg.Prompt)
	}
	return scanner.Err()
}

// runLine executes one command line and reports whether the REPL should
// keep reading further lines.
func runLine(line string) bool {
	line = strings.TrimSpace(line)
	if line != "" {
		rootCmd.SetArgs(tokenize(line))
		if err := rootCmd.Execute(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	return !quit
}

// tokenize splits one REPL line into command-line-style tokens. It does
// not support quoting.
func tokenize(line string) []string {
	return strings.Fields(line)
}
