// Package variant implements the tagged value domain used by the expression
// evaluator: unsigned integers, doubles, strings, error values, and double
// vectors, together with the conversion and comparison rules that operators
// and functions rely on.
package variant

import (
	"strconv"
	"strings"
)

// Type identifies the variant held by a Value.
type Type uint8

const (
	// None is the empty variant. It is the zero value of a Value.
	None Type = iota
	// Uint64 holds an exact 64-bit unsigned integer.
	Uint64
	// Double holds an IEEE-754 64-bit floating point number.
	Double
	// Str holds an owned UTF-8 string.
	Str
	// Error holds an error message. Error values propagate through
	// evaluation instead of aborting it when error processing is enabled.
	Error
	// DoubleVector holds an ordered sequence of doubles. Vectors are only
	// produced upstream (history data) and consumed by aggregation
	// functions.
	DoubleVector
)

// String returns the type name used in diagnostics.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Uint64:
		return "unsigned integer"
	case Double:
		return "double"
	case Str:
		return "string"
	case Error:
		return "error"
	case DoubleVector:
		return "double vector"
	default:
		return "unknown"
	}
}

// Value is a tagged variant. The zero value is None.
type Value struct {
	typ  Type
	ui64 uint64
	dbl  float64
	str  string
	vec  []float64
}

// NewNone returns the empty value.
func NewNone() Value {
	return Value{}
}

// NewUint64 returns an unsigned integer value.
func NewUint64(v uint64) Value {
	return Value{typ: Uint64, ui64: v}
}

// NewDouble returns a floating point value.
func NewDouble(v float64) Value {
	return Value{typ: Double, dbl: v}
}

// NewString returns a string value.
func NewString(s string) Value {
	return Value{typ: Str, str: s}
}

// NewError returns an error value carrying the given message.
func NewError(msg string) Value {
	return Value{typ: Error, str: msg}
}

// NewVector returns a double vector value. The slice is used as-is; use
// Clone when the caller keeps its own reference.
func NewVector(v []float64) Value {
	return Value{typ: DoubleVector, vec: v}
}

// Type returns the variant tag.
func (v Value) Type() Type {
	return v.typ
}

// Uint64 returns the unsigned integer payload.
func (v Value) Uint64() uint64 {
	return v.ui64
}

// Double returns the floating point payload.
func (v Value) Double() float64 {
	return v.dbl
}

// Str returns the string payload.
func (v Value) Str() string {
	return v.str
}

// ErrorMessage returns the message of an Error value.
func (v Value) ErrorMessage() string {
	return v.str
}

// Vector returns the double vector payload.
func (v Value) Vector() []float64 {
	return v.vec
}

// Clone returns a deep copy of the value. Only the vector payload needs
// copying; all other payloads are immutable.
func (v Value) Clone() Value {
	if v.typ == DoubleVector && v.vec != nil {
		vec := make([]float64, len(v.vec))
		copy(vec, v.vec)
		v.vec = vec
	}
	return v
}

// Clear resets the value to None.
func (v *Value) Clear() {
	*v = Value{}
}

// String returns the canonical string form of the value. Doubles are
// formatted with the shortest representation that parses back exactly, so
// a string round trip preserves the number.
func (v Value) String() string {
	switch v.typ {
	case Uint64:
		return strconv.FormatUint(v.ui64, 10)
	case Double:
		return strconv.FormatFloat(v.dbl, 'g', -1, 64)
	case Str, Error:
		return v.str
	case DoubleVector:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, d := range v.vec {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.FormatFloat(d, 'g', -1, 64))
		}
		sb.WriteByte(']')
		return sb.String()
	default:
		return ""
	}
}

// Desc returns the value description quoted into diagnostic messages:
// the string form for scalar values, the type name for vectors.
func (v Value) Desc() string {
	switch v.typ {
	case DoubleVector:
		return v.typ.String()
	default:
		return v.String()
	}
}
