package eval

import (
	"errors"
	"testing"

	"github.com/cwbudde/go-eval/pkg/variant"
)

func TestCommonCallback(t *testing.T) {
	t.Run("unknown name dispatches to callback", func(t *testing.T) {
		var gotName string
		var gotArgs []variant.Value

		cb := func(name string, args []variant.Value, data any, ts Timespec) (variant.Value, error) {
			gotName = name
			gotArgs = append([]variant.Value(nil), args...)
			return variant.NewDouble(42), nil
		}

		ctx := funcStream("custom", 0, 2, numTok(1), strTok("x"))
		v, err := ExecuteExt(ctx, Timespec{}, cb, nil, nil)
		wantDouble(t, v, err, 42)

		if gotName != "custom" {
			t.Errorf("callback name = %q, want %q", gotName, "custom")
		}
		if len(gotArgs) != 2 || gotArgs[0].Double() != 1 || gotArgs[1].Str() != "x" {
			t.Errorf("callback args = %v", gotArgs)
		}
	})

	t.Run("built-in names are not dispatched", func(t *testing.T) {
		cb := func(name string, args []variant.Value, data any, ts Timespec) (variant.Value, error) {
			t.Errorf("callback invoked for built-in function %q", name)
			return variant.Value{}, nil
		}

		ctx := funcStream("abs", 0, 1, numTok(-3))
		v, err := ExecuteExt(ctx, Timespec{}, cb, nil, nil)
		wantDouble(t, v, err, 3)
	})

	t.Run("data and timestamp pass through", func(t *testing.T) {
		type payload struct{ id int }
		want := &payload{id: 7}

		cb := func(name string, args []variant.Value, data any, ts Timespec) (variant.Value, error) {
			if data != want {
				t.Errorf("callback data = %v, want %v", data, want)
			}
			if ts.Sec != 1000 || ts.NS != 500 {
				t.Errorf("callback ts = %+v", ts)
			}
			return variant.NewUint64(1), nil
		}

		ctx := funcStream("custom", 0, 0)
		v, err := ExecuteExt(ctx, Timespec{Sec: 1000, NS: 500}, cb, nil, want)
		wantUint64(t, v, err, 1)
	})

	t.Run("failure aborts the evaluation", func(t *testing.T) {
		cb := func(name string, args []variant.Value, data any, ts Timespec) (variant.Value, error) {
			return variant.Value{}, errors.New("item is not supported")
		}

		ctx := funcStream("custom", 0, 0)
		_, err := ExecuteExt(ctx, Timespec{}, cb, nil, nil)
		wantErrorContains(t, err, "item is not supported at \"custom()\".")
	})

	t.Run("failure becomes an error operand with error processing", func(t *testing.T) {
		cb := func(name string, args []variant.Value, data any, ts Timespec) (variant.Value, error) {
			return variant.Value{}, errors.New("no data")
		}

		// custom() or 1 => error absorbed by the short circuit
		ctx := &Context{
			Expression: "custom() or 1",
			Stack: []Token{
				{Type: TokenFunction, Loc: Loc{L: 0, R: 5}},
				{Type: TokenVarNum, Loc: Loc{L: 12, R: 12}},
				{Type: TokenOpOr, Loc: Loc{L: 9, R: 10}},
			},
			Rules: ProcessError,
		}

		v, err := ExecuteExt(ctx, Timespec{}, cb, nil, nil)
		wantDouble(t, v, err, 1)
	})

	t.Run("no callback means unknown function", func(t *testing.T) {
		ctx := funcStream("custom", 0, 0)
		_, err := Execute(ctx, Timespec{})
		wantErrorContains(t, err, "Unknown function at")
	})
}

func TestHistoryCallback(t *testing.T) {
	t.Run("always dispatched", func(t *testing.T) {
		cb := func(name string, args []variant.Value, data any, ts Timespec) (variant.Value, error) {
			if name != "last" {
				t.Errorf("callback name = %q, want %q", name, "last")
			}
			return variant.NewDouble(13), nil
		}

		ctx := &Context{
			Expression: "last(h)",
			Stack: []Token{
				strTok("h"),
				{Type: TokenHistFunction, Loc: Loc{L: 0, R: 3}, Args: 1},
			},
		}

		v, err := ExecuteExt(ctx, Timespec{}, nil, cb, nil)
		wantDouble(t, v, err, 13)
	})

	t.Run("missing callback fails", func(t *testing.T) {
		ctx := &Context{
			Expression: "last(h)",
			Stack: []Token{
				strTok("h"),
				{Type: TokenHistFunction, Loc: Loc{L: 0, R: 3}, Args: 1},
			},
		}

		_, err := Execute(ctx, Timespec{})
		wantErrorContains(t, err, "Unknown function at")
	})

	t.Run("not enough stack values", func(t *testing.T) {
		cb := func(name string, args []variant.Value, data any, ts Timespec) (variant.Value, error) {
			return variant.NewDouble(0), nil
		}

		ctx := &Context{
			Expression: "last(h)",
			Stack:      []Token{{Type: TokenHistFunction, Loc: Loc{L: 0, R: 3}, Args: 1}},
		}

		_, err := ExecuteExt(ctx, Timespec{}, nil, cb, nil)
		wantErrorContains(t, err, "not enough arguments for function")
	})

	t.Run("vector result feeds aggregation", func(t *testing.T) {
		cb := func(name string, args []variant.Value, data any, ts Timespec) (variant.Value, error) {
			return variant.NewVector([]float64{1, 2, 3}), nil
		}

		// avg(last_foreach(q)) => 2
		ctx := &Context{
			Expression: "avg(last_foreach(q))",
			Stack: []Token{
				strTok("q"),
				{Type: TokenHistFunction, Loc: Loc{L: 4, R: 15}, Args: 1},
				{Type: TokenFunction, Loc: Loc{L: 0, R: 2}, Args: 1},
			},
		}

		v, err := ExecuteExt(ctx, Timespec{}, nil, cb, nil)
		wantDouble(t, v, err, 2)
	})
}
