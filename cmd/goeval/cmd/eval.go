package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cwbudde/go-eval/internal/tokenjson"
	"github.com/cwbudde/go-eval/pkg/eval"
	"github.com/spf13/cobra"
)

var (
	evalTimestamp    int64
	evalProcessError bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate a serialized token stream",
	Long: `Evaluate a pre-parsed expression token stream from a JSON file or
from standard input.

Examples:
  # Evaluate a token stream file
  goeval eval stream.json

  # Evaluate from stdin at a fixed timestamp
  goeval eval --timestamp 1638316800 < stream.json

  # Keep evaluating through unknown-value errors
  goeval eval --process-error stream.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().Int64Var(&evalTimestamp, "timestamp", 0, "evaluation timestamp in Unix seconds (default: current time)")
	evalCmd.Flags().BoolVar(&evalProcessError, "process-error", false, "treat error values as operands instead of aborting")
}

func runEval(_ *cobra.Command, args []string) error {
	var data []byte
	var err error

	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			exitWithError("cannot read token stream: %v", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			exitWithError("cannot read token stream: %v", err)
		}
	}

	ctx, err := tokenjson.Decode(data)
	if err != nil {
		exitWithError("%v", err)
	}

	if evalProcessError {
		ctx.Rules |= eval.ProcessError
	}

	ts := eval.Timespec{Sec: evalTimestamp}
	if ts.Sec == 0 {
		now := time.Now()
		ts = eval.Timespec{Sec: now.Unix(), NS: int32(now.Nanosecond())}
	}

	value, err := eval.Execute(ctx, ts)
	if err != nil {
		exitWithError("%v", err)
	}

	fmt.Printf("%s (%s)\n", value, value.Type())

	return nil
}
