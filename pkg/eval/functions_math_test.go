package eval

import (
	"testing"

	"github.com/cwbudde/go-eval/pkg/variant"
)

func TestMathFunctions(t *testing.T) {
	tests := []struct {
		name     string
		fn       string
		operands []Token
		expected float64
	}{
		{name: "min scalars", fn: "min", operands: []Token{numTok(3), numTok(1), numTok(2)}, expected: 1},
		{name: "min single", fn: "min", operands: []Token{numTok(5)}, expected: 5},
		{name: "min vector", fn: "min", operands: []Token{vecTok(4, 2, 8)}, expected: 2},
		{name: "max scalars", fn: "max", operands: []Token{numTok(3), numTok(9), numTok(2)}, expected: 9},
		{name: "max vector", fn: "max", operands: []Token{vecTok(4, 2, 8)}, expected: 8},
		{name: "sum scalars", fn: "sum", operands: []Token{numTok(1), numTok(2), numTok(3)}, expected: 6},
		{name: "sum vector", fn: "sum", operands: []Token{vecTok(1.5, 2.5)}, expected: 4},
		{name: "avg scalars", fn: "avg", operands: []Token{numTok(1), numTok(2), numTok(3), numTok(4)}, expected: 2.5},
		{name: "avg vector", fn: "avg", operands: []Token{vecTok(2, 4)}, expected: 3},
		{name: "abs negative", fn: "abs", operands: []Token{numTok(-3.5)}, expected: 3.5},
		{name: "abs positive", fn: "abs", operands: []Token{numTok(2)}, expected: 2},
		{name: "min mixed types", fn: "min", operands: []Token{uintTok(5), strTok("2.5")}, expected: 2.5},
		{name: "suffixed string promotes", fn: "abs", operands: []Token{strTok("1K")}, expected: 1024},
		{name: "negative suffixed string", fn: "min", operands: []Token{strTok("-2m"), numTok(0)}, expected: -120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := callFunc(t, tt.fn, 0, tt.operands...)
			wantDouble(t, v, err, tt.expected)
		})
	}
}

func TestMathFunctionErrors(t *testing.T) {
	tests := []struct {
		name     string
		fn       string
		argc     int
		operands []Token
		expected string
	}{
		{name: "non-numeric argument", fn: "min", argc: 2,
			operands: []Token{numTok(1), strTok("abc")},
			expected: "function argument \"abc\" is not a numeric value"},
		{name: "empty vector", fn: "sum", argc: 1,
			operands: []Token{vecTok()},
			expected: "empty vector argument for function"},
		{name: "vector with extra argument", fn: "max", argc: 2,
			operands: []Token{vecTok(1, 2), numTok(3)},
			expected: "too many arguments for function"},
		{name: "abs with two arguments", fn: "abs", argc: 2,
			operands: []Token{numTok(1), numTok(2)},
			expected: "invalid number of arguments for function"},
		{name: "not enough stack values", fn: "min", argc: 3,
			operands: []Token{numTok(1)},
			expected: "not enough arguments for function"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Execute(funcStream(tt.fn, 0, tt.argc, tt.operands...), Timespec{})
			wantErrorContains(t, err, tt.expected)
		})
	}
}

// TestMathFunctionErrorArgument checks the short circuit: the first error
// argument becomes the function result without evaluating the function.
func TestMathFunctionErrorArgument(t *testing.T) {
	_, err := callFunc(t, "min", ProcessError, numTok(1), errTok("no data"), errTok("other"))
	wantErrorContains(t, err, "no data")
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name     string
		operands []Token
		expected float64
	}{
		{name: "inside", operands: []Token{numTok(5), numTok(1), numTok(10)}, expected: 1},
		{name: "on lower bound", operands: []Token{numTok(1), numTok(1), numTok(10)}, expected: 1},
		{name: "on upper bound", operands: []Token{numTok(10), numTok(1), numTok(10)}, expected: 1},
		{name: "below", operands: []Token{numTok(0), numTok(1), numTok(10)}, expected: 0},
		{name: "above", operands: []Token{numTok(11), numTok(1), numTok(10)}, expected: 0},
		{name: "suffixed operand", operands: []Token{strTok("1K"), numTok(1000), numTok(1100)}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := callFunc(t, "between", 0, tt.operands...)
			wantDouble(t, v, err, tt.expected)
		})
	}

	t.Run("wrong arity", func(t *testing.T) {
		_, err := callFunc(t, "between", 0, numTok(1), numTok(2))
		wantErrorContains(t, err, "invalid number of arguments")
	})
}

func TestIn(t *testing.T) {
	tests := []struct {
		name     string
		operands []Token
		expected float64
	}{
		{name: "numeric match", operands: []Token{numTok(2), numTok(1), numTok(2), numTok(3)}, expected: 1},
		{name: "numeric no match", operands: []Token{numTok(5), numTok(1), numTok(2)}, expected: 0},
		{name: "numeric string match", operands: []Token{strTok("2"), numTok(2)}, expected: 1},
		{name: "suffixed match", operands: []Token{strTok("1K"), numTok(1024)}, expected: 1},
		{name: "string match", operands: []Token{strTok("b"), strTok("a"), strTok("b")}, expected: 1},
		{name: "string no match", operands: []Token{strTok("x"), strTok("a"), strTok("b")}, expected: 0},
		{name: "string mode on mixed args", operands: []Token{numTok(2), strTok("abc"), strTok("2")}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := callFunc(t, "in", 0, tt.operands...)
			wantDouble(t, v, err, tt.expected)
		})
	}

	t.Run("single argument", func(t *testing.T) {
		_, err := callFunc(t, "in", 0, numTok(1))
		wantErrorContains(t, err, "invalid number of arguments")
	})

	t.Run("vector argument", func(t *testing.T) {
		_, err := callFunc(t, "in", 0, vecTok(1), numTok(1))
		wantErrorContains(t, err, "invalid function first argument")
	})

	t.Run("error argument short-circuits", func(t *testing.T) {
		_, err := callFunc(t, "in", ProcessError, numTok(1), errTok("no data"))
		wantErrorContains(t, err, "no data")
	})
}

// TestFunctionStackDelta checks that every function leaves the stack with
// net delta 1 - arity: surrounding values survive untouched.
func TestFunctionStackDelta(t *testing.T) {
	// 10, min(3, 1), + => 11
	ctx := &Context{
		Expression: "min()",
		Stack: []Token{
			numTok(10),
			numTok(3),
			numTok(1),
			{Type: TokenFunction, Loc: Loc{L: 0, R: 2}, Args: 2},
			{Type: TokenOpAdd, Loc: Loc{L: 0, R: 0}},
		},
	}

	v, err := Execute(ctx, Timespec{})
	wantDouble(t, v, err, 11)
}

// TestInDeepStack checks that membership looks at the function arguments,
// not at the bottom of the stack.
func TestInDeepStack(t *testing.T) {
	// 99, in("a", "b"), + fails: "a" not in {"b"} => 99 + 0
	ctx := &Context{
		Expression: "in()",
		Stack: []Token{
			numTok(99),
			strTok("a"),
			strTok("b"),
			{Type: TokenFunction, Loc: Loc{L: 0, R: 1}, Args: 2},
			{Type: TokenOpAdd, Loc: Loc{L: 0, R: 0}},
		},
	}

	v, err := Execute(ctx, Timespec{})
	wantDouble(t, v, err, 99)
}

func TestMinMaxKeepDoubleType(t *testing.T) {
	v, err := callFunc(t, "min", 0, uintTok(3), uintTok(5))
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if v.Type() != variant.Double {
		t.Errorf("result type = %v, want Double", v.Type())
	}
}
