package eval

import (
	"fmt"

	"github.com/cwbudde/go-eval/pkg/variant"
)

// fuzzyZero reports whether a double counts as zero for logical truthiness
// and division checks.
func fuzzyZero(d float64) bool {
	return variant.DoubleEquals(d, 0)
}

// executeOpUnary evaluates a unary operator against the top of stack. An
// error operand passes through untouched.
func executeOpUnary(ctx *Context, tok *Token, out *outputStack) error {
	if out.len() < 1 {
		return fmt.Errorf("unary operator requires one operand at \"%s\"", ctx.tokenTail(tok))
	}

	right := out.peek(1)

	if right.Type() == variant.Error {
		return nil
	}

	if err := right.Convert(variant.Double); err != nil {
		return fmt.Errorf("unary operator operand \"%s\" is not a numeric value at \"%s\"",
			right.Desc(), ctx.tokenTail(tok))
	}

	var value float64
	switch tok.Type {
	case TokenOpMinus:
		value = -right.Double()
	case TokenOpNot:
		if fuzzyZero(right.Double()) {
			value = 1
		}
	default:
		return fmt.Errorf("unknown unary operator at \"%s\"", ctx.tokenTail(tok))
	}

	*right = variant.NewDouble(value)

	return nil
}

// logicShortCircuit resolves an and/or operator whose other operand is an
// error: and with a zero operand is 0, or with a non-zero operand is 1.
// It reports false when the error has to win.
func logicShortCircuit(tok *Token, other variant.Value) (float64, bool) {
	if other.Type() == variant.Error {
		return 0, false
	}

	v := other
	if err := v.Convert(variant.Double); err != nil {
		return 0, false
	}

	switch tok.Type {
	case TokenOpAnd:
		if fuzzyZero(v.Double()) {
			return 0, true
		}
	case TokenOpOr:
		if !fuzzyZero(v.Double()) {
			return 1, true
		}
	}

	return 0, false
}

// evalCompare compares two values with suffixed-number awareness: a string
// side holding a suffixed number is converted to a scaled double before the
// generic variant ordering applies.
func evalCompare(left, right variant.Value) int {
	if v, ok := variant.ConvertSuffixedNumber(left); ok {
		left = v
	}
	if v, ok := variant.ConvertSuffixedNumber(right); ok {
		right = v
	}

	return variant.Compare(left, right)
}

// executeOpBinary evaluates a binary operator against the two topmost
// operands. Error operands win over everything except a deciding and/or
// short circuit.
func executeOpBinary(ctx *Context, tok *Token, out *outputStack) error {
	if out.len() < 2 {
		return fmt.Errorf("binary operator requires two operands at \"%s\"", ctx.tokenTail(tok))
	}

	left := out.peek(2)
	right := out.peek(1)

	finish := func(value float64) {
		*left = variant.NewDouble(value)
		out.drop()
	}

	// error operands

	if left.Type() == variant.Error {
		if tok.Type == TokenOpAnd || tok.Type == TokenOpOr {
			if value, ok := logicShortCircuit(tok, *right); ok {
				finish(value)
				return nil
			}
		}

		out.drop()

		return nil
	} else if right.Type() == variant.Error {
		if tok.Type == TokenOpAnd || tok.Type == TokenOpOr {
			if value, ok := logicShortCircuit(tok, *left); ok {
				finish(value)
				return nil
			}
		}

		*left = *right
		out.drop()

		return nil
	}

	// equality operators compare without numeric coercion

	switch tok.Type {
	case TokenOpEq:
		if evalCompare(*left, *right) == 0 {
			finish(1)
		} else {
			finish(0)
		}
		return nil
	case TokenOpNe:
		if evalCompare(*left, *right) == 0 {
			finish(0)
		} else {
			finish(1)
		}
		return nil
	}

	// the remaining operators need numeric operands

	if err := left.Convert(variant.Double); err != nil {
		return fmt.Errorf("left operand \"%s\" is not a numeric value for operator at \"%s\"",
			left.Desc(), ctx.tokenTail(tok))
	}

	if err := right.Convert(variant.Double); err != nil {
		return fmt.Errorf("right operand \"%s\" is not a numeric value for operator at \"%s\"",
			right.Desc(), ctx.tokenTail(tok))
	}

	switch tok.Type {
	case TokenOpAnd:
		if fuzzyZero(left.Double()) || fuzzyZero(right.Double()) {
			finish(0)
		} else {
			finish(1)
		}
	case TokenOpOr:
		if !fuzzyZero(left.Double()) || !fuzzyZero(right.Double()) {
			finish(1)
		} else {
			finish(0)
		}
	case TokenOpLt:
		finish(boolDouble(variant.Compare(*left, *right) < 0))
	case TokenOpLe:
		finish(boolDouble(variant.Compare(*left, *right) <= 0))
	case TokenOpGt:
		finish(boolDouble(variant.Compare(*left, *right) > 0))
	case TokenOpGe:
		finish(boolDouble(variant.Compare(*left, *right) >= 0))
	case TokenOpAdd:
		finish(left.Double() + right.Double())
	case TokenOpSub:
		finish(left.Double() - right.Double())
	case TokenOpMul:
		finish(left.Double() * right.Double())
	case TokenOpDiv:
		if fuzzyZero(right.Double()) {
			return fmt.Errorf("division by zero at \"%s\"", ctx.tokenTail(tok))
		}
		finish(left.Double() / right.Double())
	default:
		return fmt.Errorf("unknown binary operator at \"%s\"", ctx.tokenTail(tok))
	}

	return nil
}

func boolDouble(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
