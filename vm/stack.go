package vm

// Stack is the operand stack. It is not safe for concurrent use; an
// Interpreter owns its stack exclusively.
type Stack struct {
	data []Value
}

type StackOpt func(*Stack) *Stack

// StackCapacity preallocates room for n values. The stack still grows past n.
func StackCapacity(n int) StackOpt {
	return func(s *Stack) *Stack {
		if n > 0 {
			s.data = make([]Value, 0, n)
		}
		return s
	}
}

func NewStack(opts ...StackOpt) *Stack {
	s := &Stack{
		data: make([]Value, 0, 64),
	}
	for _, opt := range opts {
		s = opt(s)
	}
	return s
}

func (s *Stack) Push(v Value) {
	s.data = append(s.data, v)
}

func (s *Stack) Pop() (Value, error) {
	if s.Empty() {
		return 0, ErrStackUnderflow
	}

	v := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return v, nil
}

func (s *Stack) Peek() (Value, error) {
	if s.Empty() {
		return 0, ErrStackUnderflow
	}
	return s.data[len(s.data)-1], nil
}

func (s *Stack) Empty() bool {
	return len(s.data) == 0
}

func (s *Stack) Len() int {
	return len(s.data)
}

// Values returns a copy of the stack contents, bottom first
func (s *Stack) Values() []Value {
	out := make([]Value, len(s.data))
	copy(out, s.data)
	return out
}
