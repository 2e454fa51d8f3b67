package eval

import "github.com/cwbudde/go-eval/pkg/variant"

// outputStack is the operand stack of one evaluation. Values pushed onto
// it are owned by the stack until they are replaced by a result or moved
// out as the evaluation result.
type outputStack struct {
	values []variant.Value
}

func (s *outputStack) len() int {
	return len(s.values)
}

func (s *outputStack) push(v variant.Value) {
	s.values = append(s.values, v)
}

// peek returns the value offset positions from the top; peek(1) is the top
// of stack. The caller must have checked the stack depth.
func (s *outputStack) peek(offset int) *variant.Value {
	return &s.values[len(s.values)-offset]
}

// drop removes the top value.
func (s *outputStack) drop() {
	s.values = s.values[:len(s.values)-1]
}

// args returns the top argc values in push order. The slice aliases the
// stack.
func (s *outputStack) args(argc int) []variant.Value {
	return s.values[len(s.values)-argc:]
}

// functionReturn replaces the top argc values with the function result.
// This is the only mechanism by which functions return.
func (s *outputStack) functionReturn(argc int, v variant.Value) {
	s.values = s.values[:len(s.values)-argc]
	s.push(v)
}
