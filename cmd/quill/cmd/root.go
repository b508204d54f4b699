package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose      bool
	maxDepth     int
	moduleNames  []string
	errorContext int
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill interpreter",
	Long: `quill is the reference interpreter for the Quill expression language.

Quill is a small, dynamically-typed language built around a single
unified expression/value model: every piece of syntax — literals,
lambdas, quoted code, even the program itself — is the same kind of
value, and quotation plus unhygienic macros let scripts manipulate
their own syntax at runtime.

This CLI tokenizes, parses, and evaluates Quill source, and exposes the
standard modules (json, fs, time, rand, os) a script can opt into.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "depth", 1024, "maximum evaluator recursion depth")
	rootCmd.PersistentFlags().StringSliceVar(&moduleNames, "modules", nil, "standard modules to preload (json,fs,time,rand,os)")
	rootCmd.PersistentFlags().IntVar(&errorContext, "context", 0, "lines of surrounding source to show around an error (0 = just the error line)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
