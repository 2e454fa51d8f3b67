package eval

import "github.com/cwbudde/go-eval/pkg/variant"

// Rules is a bitfield of evaluation mode flags.
type Rules uint32

const (
	// ProcessError makes error values first-class operands: a pre-bound
	// error is pushed onto the stack instead of aborting the evaluation,
	// and callback failures are stored as error results.
	ProcessError Rules = 1 << iota
)

// Has reports whether all the given flags are set.
func (r Rules) Has(flags Rules) bool {
	return r&flags == flags
}

// Timespec is the wall-clock timestamp of an evaluation.
type Timespec struct {
	Sec int64
	NS  int32
}

// Callback evaluates a function the core does not implement itself. It
// receives the function name, the argument values currently on the operand
// stack, the opaque caller data and the evaluation timestamp. The argument
// slice aliases the operand stack and must not be retained after the call
// returns.
type Callback func(name string, args []variant.Value, data any, ts Timespec) (variant.Value, error)

// Context carries one pre-parsed expression through an evaluation. The
// expression text, token stack and rules form the compatibility surface
// with the upstream parser; the evaluator never mutates them.
type Context struct {
	// Expression is the original source text, used for diagnostics only.
	Expression string
	// Stack is the postfix token sequence.
	Stack []Token
	// Rules holds the evaluation mode flags.
	Rules Rules

	ts        Timespec
	commonFn  Callback
	historyFn Callback
	cbData    any
}

func (ctx *Context) init(ts Timespec, commonFn, historyFn Callback, data any) {
	ctx.ts = ts
	ctx.commonFn = commonFn
	ctx.historyFn = historyFn
	ctx.cbData = data
}

// tokenText returns the source text covered by the token.
func (ctx *Context) tokenText(tok *Token) string {
	return ctx.Expression[tok.Loc.L : tok.Loc.R+1]
}

// tokenTail returns the source text from the token start to the end of the
// expression; diagnostics quote it to point at the failing location.
func (ctx *Context) tokenTail(tok *Token) string {
	return ctx.Expression[tok.Loc.L:]
}
