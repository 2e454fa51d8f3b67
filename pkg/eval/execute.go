package eval

import (
	"errors"
	"fmt"

	"github.com/cwbudde/go-eval/pkg/variant"
)

// Execute evaluates the pre-parsed expression of the context at the given
// timestamp. Functions the core does not implement itself fail as unknown;
// use ExecuteExt to supply host callbacks for them.
func Execute(ctx *Context, ts Timespec) (variant.Value, error) {
	ctx.init(ts, nil, nil, nil)
	return execute(ctx)
}

// ExecuteExt evaluates the pre-parsed expression of the context with host
// callbacks. The common callback is consulted for function names the core
// does not recognize, the history callback for all history functions; data
// is passed through to both.
func ExecuteExt(ctx *Context, ts Timespec, commonFn, historyFn Callback, data any) (variant.Value, error) {
	ctx.init(ts, commonFn, historyFn, data)
	return execute(ctx)
}

// execute runs the single pass over the token stream and enforces the
// final-stack invariant: exactly one non-error value remains.
func execute(ctx *Context) (variant.Value, error) {
	var out outputStack

	for i := range ctx.Stack {
		tok := &ctx.Stack[i]

		var err error
		switch {
		case tok.Type.IsOperator1():
			err = executeOpUnary(ctx, tok, &out)
		case tok.Type.IsOperator2():
			err = executeOpBinary(ctx, tok, &out)
		default:
			switch tok.Type {
			case TokenNop:
			case TokenVarNum, TokenVarStr, TokenVarMacro, TokenVarUserMacro,
				TokenArgQuery, TokenArgPeriod:
				err = executePushValue(ctx, tok, &out)
			case TokenArgNull:
				executePushNull(&out)
			case TokenFunction:
				err = executeCommonFunction(ctx, tok, &out)
			case TokenHistFunction:
				err = executeHistoryFunction(ctx, tok, &out)
			case TokenFunctionID:
				if tok.Value.Type() == variant.None {
					err = errors.New("trigger history functions must be pre-calculated")
				} else {
					err = executePushValue(ctx, tok, &out)
				}
			case TokenException:
				err = throwException(&out)
			default:
				err = fmt.Errorf("unknown token at \"%s\"", ctx.tokenTail(tok))
			}
		}

		if err != nil {
			return variant.Value{}, topLevelError(err)
		}
	}

	if out.len() != 1 {
		return variant.Value{}, topLevelError(
			errors.New("output stack after expression execution must contain one value"))
	}

	if result := *out.peek(1); result.Type() != variant.Error {
		return result, nil
	}

	return variant.Value{}, topLevelError(errors.New(out.peek(1).ErrorMessage()))
}

// topLevelError formats the user-visible evaluation error. Internal
// messages start lowercase and receive the standard prefix; messages that
// already begin uppercase (typically produced by callbacks) pass through
// verbatim.
func topLevelError(err error) error {
	msg := err.Error()
	if len(msg) > 0 && msg[0] >= 'a' && msg[0] <= 'z' {
		return fmt.Errorf("Cannot evaluate expression: %s", msg)
	}
	return err
}
