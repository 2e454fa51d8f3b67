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

var rootCmd = &cobra.Command{
	Use:   "goeval",
	Short: "Expression evaluation core for monitoring token streams",
	Long: `goeval evaluates pre-parsed postfix expression token streams.

The evaluator executes arithmetic, comparison and logical operators over
typed operands, runs the built-in function library (math, string, time,
bitwise, set membership), and propagates per-value errors when error
processing is enabled.

Token streams are produced by an upstream expression parser and passed to
this tool in their serialized JSON form.`,
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
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
