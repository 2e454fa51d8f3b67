package eval

import (
	"fmt"
	"math"

	"github.com/cwbudde/go-eval/pkg/variant"
)

// prepareMathFunctionArgs validates and converts the arguments of a math
// function. Math functions accept either one or more operands convertible
// to doubles, or a single non-empty double vector. It reports done=true
// when an error argument already produced the function result.
func prepareMathFunctionArgs(ctx *Context, tok *Token, out *outputStack) (done bool, err error) {
	if done, err = validateFunctionArgs(ctx, tok, out); done || err != nil {
		return done, err
	}

	args := out.args(tok.Args)

	if args[0].Type() != variant.DoubleVector {
		for i := range args {
			if err := convertFunctionArg(ctx, tok, variant.Double, &args[i]); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	if tok.Args != 1 {
		return false, fmt.Errorf("too many arguments for function at \"%s\"", ctx.tokenTail(tok))
	}

	if len(args[0].Vector()) == 0 {
		return false, fmt.Errorf("empty vector argument for function at \"%s\"", ctx.tokenTail(tok))
	}

	return false, nil
}

// mathArgValues returns the prepared argument values of a math function as
// a flat slice of doubles.
func mathArgValues(tok *Token, out *outputStack) []float64 {
	args := out.args(tok.Args)

	if args[0].Type() == variant.DoubleVector {
		return args[0].Vector()
	}

	values := make([]float64, len(args))
	for i, arg := range args {
		values[i] = arg.Double()
	}

	return values
}

func executeMin(ctx *Context, tok *Token, out *outputStack) error {
	if done, err := prepareMathFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	values := mathArgValues(tok, out)

	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}

	out.functionReturn(tok.Args, variant.NewDouble(min))

	return nil
}

func executeMax(ctx *Context, tok *Token, out *outputStack) error {
	if done, err := prepareMathFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	values := mathArgValues(tok, out)

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}

	out.functionReturn(tok.Args, variant.NewDouble(max))

	return nil
}

func executeSum(ctx *Context, tok *Token, out *outputStack) error {
	if done, err := prepareMathFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	var sum float64
	for _, v := range mathArgValues(tok, out) {
		sum += v
	}

	out.functionReturn(tok.Args, variant.NewDouble(sum))

	return nil
}

// executeAvg averages the arguments. Over scalar arguments the divisor is
// the declared arity; over a vector it is the vector length.
func executeAvg(ctx *Context, tok *Token, out *outputStack) error {
	if done, err := prepareMathFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	values := mathArgValues(tok, out)

	var avg float64
	for _, v := range values {
		avg += v
	}
	avg /= float64(len(values))

	out.functionReturn(tok.Args, variant.NewDouble(avg))

	return nil
}

func executeAbs(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 1 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := prepareMathFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	arg := out.peek(1)
	out.functionReturn(tok.Args, variant.NewDouble(math.Abs(arg.Double())))

	return nil
}

// executeBetween checks lo <= x <= hi in double space.
func executeBetween(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 3 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := prepareMathFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	args := out.args(tok.Args)
	x, lo, hi := args[0].Double(), args[1].Double(), args[2].Double()

	out.functionReturn(tok.Args, variant.NewDouble(boolDouble(lo <= x && x <= hi)))

	return nil
}

// executeIn checks the first argument for membership among the rest.
// When every argument converts to a double the comparison is numeric,
// otherwise all arguments are compared as strings byte for byte.
func executeIn(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args < 2 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	args := out.args(tok.Args)

	// Convert arguments to doubles until one refuses; a refusal switches
	// the whole comparison to string mode.
	numeric := true
	for i := range args {
		if v, ok := variant.ConvertSuffixedNumber(args[i]); ok {
			args[i] = v
			continue
		}
		if args[i].Convert(variant.Double) != nil {
			numeric = false
			break
		}
	}

	result := variant.NewDouble(0)

	if numeric {
		needle := args[0].Double()
		for _, arg := range args[1:] {
			if needle == arg.Double() {
				result = variant.NewDouble(1)
				break
			}
		}
	} else {
		if err := args[0].Convert(variant.Str); err != nil {
			return invalidArg(ctx, tok, "first")
		}

		for i := range args[1:] {
			arg := &args[i+1]
			if err := arg.Convert(variant.Str); err != nil {
				return fmt.Errorf("invalid function argument \"%s\" at \"%s\"",
					arg.Desc(), ctx.tokenTail(tok))
			}
			if args[0].Str() == arg.Str() {
				result = variant.NewDouble(1)
				break
			}
		}
	}

	out.functionReturn(tok.Args, result)

	return nil
}
