package eval

import (
	"errors"
	"fmt"

	"github.com/cwbudde/go-eval/pkg/variant"
)

// executeCallbackFunction evaluates a function through a host callback.
// A callback failure either aborts the evaluation or, with error
// processing enabled, becomes an error value stored as the function
// result.
func executeCallbackFunction(ctx *Context, tok *Token, fn Callback, out *outputStack) error {
	var args []variant.Value
	if tok.Args > 0 {
		args = out.args(tok.Args)
	}

	value, err := fn(ctx.tokenText(tok), args, ctx.cbData, ctx.ts)
	if err != nil {
		msg := fmt.Sprintf("%s at \"%s\".", err, ctx.tokenTail(tok))

		if !ctx.Rules.Has(ProcessError) {
			return errors.New(msg)
		}

		value = variant.NewError(msg)
	}

	out.functionReturn(tok.Args, value)

	return nil
}

// executeHistoryFunction dispatches a history function to the host
// callback. History data cannot be produced by the core itself.
func executeHistoryFunction(ctx *Context, tok *Token, out *outputStack) error {
	if out.len() < tok.Args {
		return fmt.Errorf("not enough arguments for function at \"%s\"", ctx.tokenTail(tok))
	}

	if ctx.historyFn != nil {
		return executeCallbackFunction(ctx, tok, ctx.historyFn, out)
	}

	return fmt.Errorf("Unknown function at \"%s\".", ctx.tokenTail(tok))
}
