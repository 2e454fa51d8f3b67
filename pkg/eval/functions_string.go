package eval

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/cwbudde/go-eval/internal/strutil"
	"github.com/cwbudde/go-eval/pkg/variant"
)

// maxStringLen caps the output of string-producing functions.
const maxStringLen = 2048

// whitespaceCutset is the default cutset of the trim functions.
const whitespaceCutset = " \t\r\n"

// executeLength returns the UTF-8 character count of the argument.
func executeLength(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 1 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	arg := out.peek(1)
	if err := convertFunctionArg(ctx, tok, variant.Str, arg); err != nil {
		return err
	}

	out.functionReturn(1, variant.NewDouble(float64(strutil.Length(arg.Str()))))

	return nil
}

// executeByteLength returns the significant byte count of the argument:
// the index of the highest non-zero byte for unsigned integers, the double
// size for numeric values, and the byte length of the string form
// otherwise.
func executeByteLength(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 1 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	arg := out.peek(1)

	var value float64
	switch {
	case arg.Convert(variant.Uint64) == nil:
		value = float64((bits.Len64(arg.Uint64()) + 7) / 8)
	case arg.Convert(variant.Double) == nil:
		value = 8
	case arg.Convert(variant.Str) != nil:
		return fmt.Errorf("invalid function argument at \"%s\"", ctx.tokenTail(tok))
	default:
		value = float64(len(arg.Str()))
	}

	out.functionReturn(1, variant.NewDouble(value))

	return nil
}

// executeBitLength returns the significant bit count of the argument,
// analogous to bytelength.
func executeBitLength(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 1 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	arg := out.peek(1)

	var value float64
	switch {
	case arg.Convert(variant.Uint64) == nil:
		value = float64(bits.Len64(arg.Uint64()))
	case arg.Convert(variant.Double) == nil:
		value = 64
	case arg.Convert(variant.Str) != nil:
		return fmt.Errorf("invalid function argument at \"%s\"", ctx.tokenTail(tok))
	default:
		value = float64(len(arg.Str()) * 8)
	}

	out.functionReturn(1, variant.NewDouble(value))

	return nil
}

// executeChar returns a one-byte string with the given code unit.
func executeChar(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 1 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	arg := out.peek(1)
	if arg.Convert(variant.Uint64) != nil || arg.Uint64() > 255 {
		return fmt.Errorf("invalid function argument at \"%s\"", ctx.tokenTail(tok))
	}

	out.functionReturn(1, variant.NewString(string([]byte{byte(arg.Uint64())})))

	return nil
}

// executeASCII returns the first code unit of the string form of the
// argument as an unsigned integer.
func executeASCII(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 1 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	arg := out.peek(1)
	if arg.Convert(variant.Str) != nil || len(arg.Str()) == 0 {
		return fmt.Errorf("invalid function argument at \"%s\"", ctx.tokenTail(tok))
	}

	out.functionReturn(1, variant.NewUint64(uint64(arg.Str()[0])))

	return nil
}

// executeLeft returns the first n characters of the string.
func executeLeft(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 2 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	arg := out.peek(2)
	n := out.peek(1)

	if err := arg.Convert(variant.Str); err != nil {
		return invalidArg(ctx, tok, "first")
	}

	if err := convertUintArg(ctx, tok, n); err != nil {
		return err
	}

	out.functionReturn(2, variant.NewString(strutil.FirstChars(arg.Str(), n.Uint64())))

	return nil
}

// executeRight returns the last n characters of the string.
func executeRight(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 2 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	arg := out.peek(2)
	n := out.peek(1)

	if err := arg.Convert(variant.Str); err != nil {
		return invalidArg(ctx, tok, "first")
	}

	if err := convertUintArg(ctx, tok, n); err != nil {
		return err
	}

	out.functionReturn(2, variant.NewString(strutil.LastChars(arg.Str(), n.Uint64())))

	return nil
}

// executeMid returns up to n characters starting at the 1-based start
// position.
func executeMid(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 3 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	arg := out.peek(3)
	start := out.peek(2)
	n := out.peek(1)

	if err := arg.Convert(variant.Str); err != nil {
		return invalidArg(ctx, tok, "first")
	}

	srclen := uint64(strutil.Length(arg.Str()))

	if start.Convert(variant.Uint64) != nil || start.Uint64() == 0 || start.Uint64() > srclen {
		return invalidArg(ctx, tok, "second")
	}

	if err := convertUintArg(ctx, tok, n); err != nil {
		return err
	}

	tail := strutil.SkipChars(arg.Str(), start.Uint64()-1)

	// Only truncate while the requested span ends before the second-to-last
	// character; a span ending on that character also takes the last one.
	value := tail
	if srclen > start.Uint64()+n.Uint64() {
		value = strutil.FirstChars(tail, n.Uint64())
	}

	out.functionReturn(3, variant.NewString(value))

	return nil
}

// executeConcat concatenates two strings.
func executeConcat(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 2 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	str1 := out.peek(2)
	str2 := out.peek(1)

	if err := str1.Convert(variant.Str); err != nil {
		return invalidArg(ctx, tok, "first")
	}

	if err := str2.Convert(variant.Str); err != nil {
		return invalidArg(ctx, tok, "second")
	}

	out.functionReturn(2, variant.NewString(str1.Str()+str2.Str()))

	return nil
}

// executeInsert replaces n bytes starting at the 1-based start position
// with the replacement string.
func executeInsert(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 4 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	arg := out.peek(4)
	start := out.peek(3)
	n := out.peek(2)
	replacement := out.peek(1)

	if err := arg.Convert(variant.Str); err != nil {
		return invalidArg(ctx, tok, "first")
	}

	if err := convertUintArg(ctx, tok, start); err != nil {
		return err
	}

	if err := convertUintArg(ctx, tok, n); err != nil {
		return err
	}

	if err := replacement.Convert(variant.Str); err != nil {
		return invalidArg(ctx, tok, "fourth")
	}

	s := arg.Str()

	off := start.Uint64() - 1
	if off > uint64(len(s)) {
		off = uint64(len(s))
	}
	count := n.Uint64()
	if count > uint64(len(s))-off {
		count = uint64(len(s)) - off
	}

	out.functionReturn(4, variant.NewString(s[:off]+replacement.Str()+s[off+count:]))

	return nil
}

// executeReplace replaces every non-overlapping occurrence of the pattern.
// An empty pattern leaves the string unchanged.
func executeReplace(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 3 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	arg := out.peek(3)
	pattern := out.peek(2)
	replacement := out.peek(1)

	if err := arg.Convert(variant.Str); err != nil {
		return invalidArg(ctx, tok, "first")
	}

	if err := pattern.Convert(variant.Str); err != nil {
		return invalidArg(ctx, tok, "second")
	}

	if err := replacement.Convert(variant.Str); err != nil {
		return invalidArg(ctx, tok, "third")
	}

	value := arg.Str()
	if len(pattern.Str()) > 0 {
		value = strings.ReplaceAll(value, pattern.Str(), replacement.Str())
	}

	out.functionReturn(3, variant.NewString(value))

	return nil
}

// executeRepeat repeats the string n times, bounded by the maximum string
// length.
func executeRepeat(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 2 {
		return invalidArgCount(ctx, tok)
	}

	if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
		return err
	}

	str := out.peek(2)
	num := out.peek(1)

	if err := str.Convert(variant.Str); err != nil {
		return invalidArg(ctx, tok, "first")
	}

	if err := convertUintArg(ctx, tok, num); err != nil {
		return err
	}

	n := num.Uint64()
	size := uint64(len(str.Str()))

	if size != 0 && n >= (maxStringLen+size-1)/size {
		return fmt.Errorf("maximum allowed string length (%d) exceeded: %d", maxStringLen, n*size)
	}

	value := ""
	if size != 0 {
		value = strings.Repeat(str.Str(), int(n))
	}

	out.functionReturn(2, variant.NewString(value))

	return nil
}

type trimOp int

const (
	trimAll trimOp = iota
	trimLeft
	trimRight
)

// trimFunc builds the handler of one trim function. The trims accept an
// optional second argument naming the characters to remove; the default
// cutset is ASCII whitespace.
func trimFunc(op trimOp) builtinFunc {
	return func(ctx *Context, tok *Token, out *outputStack) error {
		if tok.Args < 1 || tok.Args > 2 {
			return invalidArgCount(ctx, tok)
		}

		if done, err := validateFunctionArgs(ctx, tok, out); done || err != nil {
			return err
		}

		cutset := whitespaceCutset

		var arg *variant.Value
		if tok.Args == 2 {
			arg = out.peek(2)
			sym := out.peek(1)

			if err := sym.Convert(variant.Str); err != nil {
				return invalidArg(ctx, tok, "second")
			}
			cutset = sym.Str()
		} else {
			arg = out.peek(1)
		}

		if err := arg.Convert(variant.Str); err != nil {
			return invalidArg(ctx, tok, "first")
		}

		var value string
		switch op {
		case trimAll:
			value = strings.Trim(arg.Str(), cutset)
		case trimLeft:
			value = strings.TrimLeft(arg.Str(), cutset)
		case trimRight:
			value = strings.TrimRight(arg.Str(), cutset)
		}

		out.functionReturn(tok.Args, variant.NewString(value))

		return nil
	}
}
