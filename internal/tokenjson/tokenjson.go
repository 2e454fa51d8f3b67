// Package tokenjson (de)serializes pre-parsed token streams so tooling can
// store and replay them. The format mirrors the evaluation context: the
// expression text, the rule flags and the postfix token list with optional
// pre-bound values.
package tokenjson

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/go-eval/pkg/eval"
	"github.com/cwbudde/go-eval/pkg/variant"
)

// Stream is the serialized form of an evaluation context.
type Stream struct {
	Expression string   `json:"expression"`
	Rules      []string `json:"rules,omitempty"`
	Tokens     []Token  `json:"tokens"`
}

// Token is the serialized form of one postfix token.
type Token struct {
	Type  string `json:"type"`
	Loc   [2]int `json:"loc"`
	Args  int    `json:"args,omitempty"`
	Value *Value `json:"value,omitempty"`
}

// Value is the serialized form of a pre-bound value, tagged by kind.
type Value struct {
	Type   string    `json:"type"`
	Str    string    `json:"str,omitempty"`
	Num    float64   `json:"num,omitempty"`
	Uint   uint64    `json:"uint,omitempty"`
	Error  string    `json:"error,omitempty"`
	Vector []float64 `json:"vector,omitempty"`
}

var tokenTypeNames = map[eval.TokenType]string{
	eval.TokenOpMinus:      "op_minus",
	eval.TokenOpNot:        "op_not",
	eval.TokenOpAdd:        "op_add",
	eval.TokenOpSub:        "op_sub",
	eval.TokenOpMul:        "op_mul",
	eval.TokenOpDiv:        "op_div",
	eval.TokenOpEq:         "op_eq",
	eval.TokenOpNe:         "op_ne",
	eval.TokenOpLt:         "op_lt",
	eval.TokenOpLe:         "op_le",
	eval.TokenOpGt:         "op_gt",
	eval.TokenOpGe:         "op_ge",
	eval.TokenOpAnd:        "op_and",
	eval.TokenOpOr:         "op_or",
	eval.TokenVarNum:       "var_num",
	eval.TokenVarStr:       "var_str",
	eval.TokenVarMacro:     "var_macro",
	eval.TokenVarUserMacro: "var_usermacro",
	eval.TokenArgNull:      "arg_null",
	eval.TokenArgQuery:     "arg_query",
	eval.TokenArgPeriod:    "arg_period",
	eval.TokenFunction:     "function",
	eval.TokenHistFunction: "hist_function",
	eval.TokenFunctionID:   "functionid",
	eval.TokenException:    "exception",
	eval.TokenNop:          "nop",
}

var tokenTypesByName = func() map[string]eval.TokenType {
	m := make(map[string]eval.TokenType, len(tokenTypeNames))
	for t, name := range tokenTypeNames {
		m[name] = t
	}
	return m
}()

var ruleNames = map[eval.Rules]string{
	eval.ProcessError: "process_error",
}

// Decode parses a serialized token stream into an evaluation context.
func Decode(data []byte) (*eval.Context, error) {
	var stream Stream
	if err := json.Unmarshal(data, &stream); err != nil {
		return nil, fmt.Errorf("cannot parse token stream: %w", err)
	}

	ctx := &eval.Context{
		Expression: stream.Expression,
		Stack:      make([]eval.Token, 0, len(stream.Tokens)),
	}

	for _, name := range stream.Rules {
		rule, ok := ruleByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
		ctx.Rules |= rule
	}

	for i, t := range stream.Tokens {
		typ, ok := tokenTypesByName[t.Type]
		if !ok {
			return nil, fmt.Errorf("token %d: unknown token type %q", i, t.Type)
		}

		tok := eval.Token{
			Type: typ,
			Loc:  eval.Loc{L: t.Loc[0], R: t.Loc[1]},
			Args: t.Args,
		}

		if t.Value != nil {
			value, err := decodeValue(t.Value)
			if err != nil {
				return nil, fmt.Errorf("token %d: %w", i, err)
			}
			tok.Value = value
		}

		ctx.Stack = append(ctx.Stack, tok)
	}

	return ctx, nil
}

// Encode serializes an evaluation context.
func Encode(ctx *eval.Context) ([]byte, error) {
	stream := Stream{
		Expression: ctx.Expression,
		Tokens:     make([]Token, 0, len(ctx.Stack)),
	}

	for rule, name := range ruleNames {
		if ctx.Rules.Has(rule) {
			stream.Rules = append(stream.Rules, name)
		}
	}

	for i, tok := range ctx.Stack {
		name, ok := tokenTypeNames[tok.Type]
		if !ok {
			return nil, fmt.Errorf("token %d: unknown token type %#x", i, uint32(tok.Type))
		}

		t := Token{
			Type: name,
			Loc:  [2]int{tok.Loc.L, tok.Loc.R},
			Args: tok.Args,
		}

		if tok.Value.Type() != variant.None {
			t.Value = encodeValue(tok.Value)
		}

		stream.Tokens = append(stream.Tokens, t)
	}

	return json.MarshalIndent(stream, "", "  ")
}

func ruleByName(name string) (eval.Rules, bool) {
	for rule, n := range ruleNames {
		if n == name {
			return rule, true
		}
	}
	return 0, false
}

func decodeValue(v *Value) (variant.Value, error) {
	switch v.Type {
	case "str":
		return variant.NewString(v.Str), nil
	case "num":
		return variant.NewDouble(v.Num), nil
	case "uint":
		return variant.NewUint64(v.Uint), nil
	case "error":
		return variant.NewError(v.Error), nil
	case "vector":
		return variant.NewVector(v.Vector), nil
	default:
		return variant.Value{}, fmt.Errorf("unknown value type %q", v.Type)
	}
}

func encodeValue(v variant.Value) *Value {
	switch v.Type() {
	case variant.Str:
		return &Value{Type: "str", Str: v.Str()}
	case variant.Double:
		return &Value{Type: "num", Num: v.Double()}
	case variant.Uint64:
		return &Value{Type: "uint", Uint: v.Uint64()}
	case variant.Error:
		return &Value{Type: "error", Error: v.ErrorMessage()}
	case variant.DoubleVector:
		return &Value{Type: "vector", Vector: v.Vector()}
	default:
		return nil
	}
}
