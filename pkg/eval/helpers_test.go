package eval

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-eval/pkg/variant"
)

// boundTok returns an operand token with a pre-bound value.
func boundTok(typ TokenType, v variant.Value) Token {
	return Token{Type: typ, Value: v}
}

func strTok(s string) Token {
	return boundTok(TokenVarMacro, variant.NewString(s))
}

func numTok(d float64) Token {
	return boundTok(TokenVarMacro, variant.NewDouble(d))
}

func uintTok(u uint64) Token {
	return boundTok(TokenVarMacro, variant.NewUint64(u))
}

func errTok(msg string) Token {
	return boundTok(TokenVarMacro, variant.NewError(msg))
}

func vecTok(values ...float64) Token {
	return boundTok(TokenVarMacro, variant.NewVector(values))
}

// funcStream builds a context that pushes the given operand tokens and then
// calls the named function with the given arity. The function name is
// embedded in the expression text so dispatch can match it.
func funcStream(name string, rules Rules, argc int, operands ...Token) *Context {
	stack := make([]Token, 0, len(operands)+1)
	stack = append(stack, operands...)
	stack = append(stack, Token{
		Type: TokenFunction,
		Loc:  Loc{L: 0, R: len(name) - 1},
		Args: argc,
	})

	return &Context{
		Expression: name + "()",
		Stack:      stack,
		Rules:      rules,
	}
}

// callFunc evaluates the named function over pre-bound arguments.
func callFunc(t *testing.T, name string, rules Rules, operands ...Token) (variant.Value, error) {
	t.Helper()
	return Execute(funcStream(name, rules, len(operands), operands...), Timespec{})
}

func wantDouble(t *testing.T, v variant.Value, err error, expected float64) {
	t.Helper()
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if v.Type() != variant.Double {
		t.Fatalf("result type = %v, want Double (%v)", v.Type(), v)
	}
	if !variant.DoubleEquals(v.Double(), expected) {
		t.Errorf("result = %v, want %v", v.Double(), expected)
	}
}

func wantUint64(t *testing.T, v variant.Value, err error, expected uint64) {
	t.Helper()
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if v.Type() != variant.Uint64 {
		t.Fatalf("result type = %v, want Uint64 (%v)", v.Type(), v)
	}
	if v.Uint64() != expected {
		t.Errorf("result = %v, want %v", v.Uint64(), expected)
	}
}

func wantString(t *testing.T, v variant.Value, err error, expected string) {
	t.Helper()
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if v.Type() != variant.Str {
		t.Fatalf("result type = %v, want Str (%v)", v.Type(), v)
	}
	if v.Str() != expected {
		t.Errorf("result = %q, want %q", v.Str(), expected)
	}
}

func wantErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("evaluation succeeded, want error containing %q", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("error = %q, want it to contain %q", err.Error(), substr)
	}
}
