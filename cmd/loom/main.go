package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loom",
		Short: "Component tree reconciliation toolkit",
		Long: `Loom reconciles component trees across build generations,
reusing clean subtrees instead of re-rendering them.

The CLI ships the supporting tooling:

  • bench    - measure reuse rates on synthetic trees
  • inspect  - serve a live tree view while builds run
  • version  - print build information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		benchCmd(),
		inspectCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
