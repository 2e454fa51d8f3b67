package eval

import (
	"errors"
	"strings"

	"github.com/cwbudde/go-eval/pkg/variant"
)

// executePushValue pushes the value of an operand token. Tokens without a
// pre-bound value are materialized from the source text; pre-bound values
// are pushed as copies.
func executePushValue(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Value.Type() == variant.None {
		out.push(tokenLiteral(ctx, tok))
		return nil
	}

	if tok.Value.Type() == variant.Error && !ctx.Rules.Has(ProcessError) {
		return errors.New(tok.Value.ErrorMessage())
	}

	// Expanded user macro values can contain suffixed numbers. Convert
	// them when possible, otherwise push the expanded value as-is.
	if tok.Type == TokenVarUserMacro {
		if v, ok := variant.ConvertSuffixedNumber(tok.Value); ok {
			out.push(v)
			return nil
		}
	}

	out.push(tok.Value.Clone())

	return nil
}

// tokenLiteral builds a value from the token's source text. Numeric tokens
// become exact unsigned integers when possible and scaled doubles
// otherwise; string tokens are unescaped; everything else is pushed as its
// raw text.
func tokenLiteral(ctx *Context, tok *Token) variant.Value {
	text := ctx.tokenText(tok)

	switch tok.Type {
	case TokenVarNum:
		if u, ok := variant.ParseUint64(text); ok {
			return variant.NewUint64(u)
		}
		return variant.NewDouble(variant.ParseLeadingFloat(text) *
			variant.SuffixFactor(ctx.Expression[tok.Loc.R]))
	case TokenVarStr:
		return variant.NewString(unescapeString(ctx.Expression, tok.Loc))
	default:
		return variant.NewString(text)
	}
}

// unescapeString strips the surrounding quotes of a string token and drops
// the backslash of each escape sequence.
func unescapeString(expression string, loc Loc) string {
	var sb strings.Builder

	for i := loc.L + 1; i < loc.R; i++ {
		if expression[i] == '\\' {
			i++
		}
		sb.WriteByte(expression[i])
	}

	return sb.String()
}

// executePushNull pushes the empty value for an explicit null argument.
func executePushNull(out *outputStack) {
	out.push(variant.NewNone())
}

// throwException terminates the evaluation with the top of stack as the
// error message.
func throwException(out *outputStack) error {
	if out.len() == 0 {
		return errors.New("exception must have one argument")
	}

	arg := out.peek(1)
	if err := arg.Convert(variant.Str); err != nil {
		return errors.New(arg.Desc())
	}

	return errors.New(arg.Str())
}
