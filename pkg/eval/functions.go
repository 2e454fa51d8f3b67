package eval

import (
	"fmt"

	"github.com/cwbudde/go-eval/pkg/variant"
)

// builtinFunc evaluates one built-in function against the operand stack.
type builtinFunc func(ctx *Context, tok *Token, out *outputStack) error

// builtins maps function names to their handlers. Function names are
// matched against the token's source text.
var builtins = map[string]builtinFunc{
	"min": executeMin,
	"max": executeMax,
	"sum": executeSum,
	"avg": executeAvg,
	"abs": executeAbs,

	"length":     executeLength,
	"bytelength": executeByteLength,
	"bitlength":  executeBitLength,
	"char":       executeChar,
	"ascii":      executeASCII,
	"left":       executeLeft,
	"right":      executeRight,
	"mid":        executeMid,
	"concat":     executeConcat,
	"insert":     executeInsert,
	"replace":    executeReplace,
	"repeat":     executeRepeat,
	"trim":       trimFunc(trimAll),
	"ltrim":      trimFunc(trimLeft),
	"rtrim":      trimFunc(trimRight),

	"date":       executeDate,
	"time":       executeTime,
	"now":        executeNow,
	"dayofweek":  executeDayOfWeek,
	"dayofmonth": executeDayOfMonth,

	"bitand":    bitwiseFunc(bitAnd),
	"bitor":     bitwiseFunc(bitOr),
	"bitxor":    bitwiseFunc(bitXor),
	"bitlshift": bitwiseFunc(bitLShift),
	"bitrshift": bitwiseFunc(bitRShift),
	"bitnot":    executeBitNot,

	"between": executeBetween,
	"in":      executeIn,
}

// executeCommonFunction routes a function token to its built-in handler,
// falling back to the host callback for unknown names.
func executeCommonFunction(ctx *Context, tok *Token, out *outputStack) error {
	if out.len() < tok.Args {
		return fmt.Errorf("not enough arguments for function at \"%s\"", ctx.tokenTail(tok))
	}

	if fn, ok := builtins[ctx.tokenText(tok)]; ok {
		return fn(ctx, tok, out)
	}

	if ctx.commonFn != nil {
		return executeCallbackFunction(ctx, tok, ctx.commonFn, out)
	}

	return fmt.Errorf("Unknown function at \"%s\".", ctx.tokenTail(tok))
}

// validateFunctionArgs checks the stack depth against the declared arity
// and short-circuits on error arguments: the first error among the
// arguments becomes the function result without evaluating the function.
// It reports done=true when the function token has been fully handled.
func validateFunctionArgs(ctx *Context, tok *Token, out *outputStack) (done bool, err error) {
	if out.len() < tok.Args {
		return false, fmt.Errorf("not enough arguments for function at \"%s\"", ctx.tokenTail(tok))
	}

	for _, arg := range out.args(tok.Args) {
		if arg.Type() == variant.Error {
			out.functionReturn(tok.Args, arg)
			return true, nil
		}
	}

	return false, nil
}

// typeDesc returns the article-prefixed type description used in argument
// coercion diagnostics.
func typeDesc(t variant.Type) string {
	switch t {
	case variant.Double:
		return "a numeric"
	case variant.Uint64:
		return "an unsigned integer"
	case variant.Str:
		return "a string"
	default:
		return t.String()
	}
}

// convertFunctionArg coerces one function argument in place. Suffixed
// numbers are accepted when the target type is Double.
func convertFunctionArg(ctx *Context, tok *Token, to variant.Type, arg *variant.Value) error {
	if to == variant.Double {
		if v, ok := variant.ConvertSuffixedNumber(*arg); ok {
			*arg = v
			return nil
		}
	}

	if err := arg.Convert(to); err != nil {
		return fmt.Errorf("function argument \"%s\" is not %s value at \"%s\"",
			arg.Desc(), typeDesc(to), ctx.tokenTail(tok))
	}

	return nil
}

// invalidArgCount returns the arity-mismatch diagnostic shared by all
// fixed-arity functions.
func invalidArgCount(ctx *Context, tok *Token) error {
	return fmt.Errorf("invalid number of arguments for function at \"%s\"", ctx.tokenTail(tok))
}

// invalidArg returns the positional argument diagnostic, with position
// spelled out ("first", "second", ...).
func invalidArg(ctx *Context, tok *Token, position string) error {
	return fmt.Errorf("invalid function %s argument at \"%s\"", position, ctx.tokenTail(tok))
}

// convertUintArg coerces an argument to an unsigned integer with the
// diagnostic shared by the string and bitwise functions.
func convertUintArg(ctx *Context, tok *Token, arg *variant.Value) error {
	if err := arg.Convert(variant.Uint64); err != nil {
		return fmt.Errorf("function argument \"%s\" is not an unsigned integer value at \"%s\"",
			arg.Desc(), ctx.tokenTail(tok))
	}

	return nil
}
