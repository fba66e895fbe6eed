// Package main is the groovytypec CLI: a thin driver around pkg/checker
// for running the type checker against a JSON-encoded class (pkg/astio)
// from the command line, modeled on CWBudde-go-dws's cmd/dwscript/cmd
// package layout (one file per subcommand, a shared rootCmd,
// exitWithError).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "groovytypec",
	Short: "Static type checker for a dynamically-typed, JVM-style OO language",
	Long: `groovytypec runs the standalone static type-checking core against a
class read from a JSON syntax-tree fixture (there is no parser in this
module; see pkg/astio).`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("config", "", "path to a groovytypec.yaml config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError("%v", err)
	}
}

func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
