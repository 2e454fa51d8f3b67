package eval

import "github.com/cwbudde/go-eval/pkg/variant"

type bitwiseOp int

const (
	bitAnd bitwiseOp = iota
	bitOr
	bitXor
	bitLShift
	bitRShift
)

// bitwiseFunc builds the handler of one two-operand bitwise function.
// Shift counts are taken modulo 64.
func bitwiseFunc(op bitwiseOp) builtinFunc {
	return func(ctx *Context, tok *Token, out *outputStack) error {
		if tok.Args != 2 {
			return invalidArgCount(ctx, tok)
		}

		if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
			return err
		}

		left := out.peek(2)
		right := out.peek(1)

		if err := convertUintArg(ctx, tok, left); err != nil {
			return err
		}

		if err := convertUintArg(ctx, tok, right); err != nil {
			return err
		}

		var value uint64
		switch op {
		case bitAnd:
			value = left.Uint64() & right.Uint64()
		case bitOr:
			value = left.Uint64() | right.Uint64()
		case bitXor:
			value = left.Uint64() ^ right.Uint64()
		case bitLShift:
			value = left.Uint64() << (right.Uint64() & 63)
		case bitRShift:
			value = left.Uint64() >> (right.Uint64() & 63)
		}

		out.functionReturn(2, variant.NewUint64(value))

		return nil
	}
}

// executeBitNot returns the bitwise complement of its argument.
func executeBitNot(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 1 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	arg := out.peek(1)
	if err := convertUintArg(ctx, tok, arg); err != nil {
		return err
	}

	out.functionReturn(1, variant.NewUint64(^arg.Uint64()))

	return nil
}
