package vm

import (
	"go.uber.org/zap"
)

// Result is the outcome of a run that did not fail. Returned is false when
// the program counter ran past the end without a ReturnValue.
type Result struct {
	Value    Value
	Returned bool
	// number of instructions executed
	Steps int
}

// Interpreter owns an operand stack and a variable table. Both survive
// between Execute calls on the same Interpreter, including after errors.
// An Interpreter must not be used from more than one goroutine at a time.
type Interpreter struct {
	stack  *Stack
	vars   *Variables
	logger *zap.Logger
}

type InterpreterOpt func(*Interpreter) *Interpreter

func LoggerOpt(l *zap.Logger) InterpreterOpt {
	return func(in *Interpreter) *Interpreter {
		in.logger = l
		return in
	}
}

// VariablesOpt makes the interpreter read and write vs, e.g. to seed inputs
func VariablesOpt(vs *Variables) InterpreterOpt {
	return func(in *Interpreter) *Interpreter {
		in.vars = vs
		return in
	}
}

// OperandStackOpt makes the interpreter push to and pop from s
func OperandStackOpt(s *Stack) InterpreterOpt {
	return func(in *Interpreter) *Interpreter {
		in.stack = s
		return in
	}
}

func NewInterpreter(opts ...InterpreterOpt) *Interpreter {
	in := &Interpreter{
		stack:  NewStack(),
		vars:   NewVariables(),
		logger: zap.L(),
	}

	for _, opt := range opts {
		in = opt(in)
	}

	in.logger = in.logger.Named("vm")

	return in
}

func (in *Interpreter) Stack() *Stack {
	return in.stack
}

func (in *Interpreter) Variables() *Variables {
	return in.vars
}

// Execute runs program from its first instruction until a ReturnValue, the
// end of the program, or the first error. Errors are *ExecError.
func (in *Interpreter) Execute(program []Instruction) (Result, error) {
	var (
		pc     int
		result Result
	)

	for pc < len(program) {
		inst := program[pc]
		in.logger.Debug("exec",
			zap.Int("pc", pc),
			zap.Stringer("inst", inst),
			zap.Int("stack", in.stack.Len()),
		)
		result.Steps++

		next, ret, err := in.step(pc, inst, len(program))
		if err != nil {
			return result, &ExecError{
				PC:          pc,
				Instruction: inst,
				Err:         err,
			}
		}
		if ret != nil {
			result.Value = *ret
			result.Returned = true
			in.logger.Debug("return",
				zap.Uint32("value", uint32(result.Value)),
				zap.Int("steps", result.Steps))
			return result, nil
		}
		pc = next
	}

	in.logger.Debug("end of program",
		zap.Int("pc", pc),
		zap.Int("steps", result.Steps))
	return result, nil
}

// step executes one instruction and returns the next program counter, or a
// non-nil return value when the program returns.
func (in *Interpreter) step(pc int, inst Instruction, size int) (int, *Value, error) {
	switch inst.Op {
	case OpLoadVal:
		in.stack.Push(inst.Value)

	case OpWriteVar:
		v, err := in.stack.Pop()
		if err != nil {
			return pc, nil, err
		}
		in.vars.Put(inst.Name, v)

	case OpReadVar:
		v, err := in.vars.Get(inst.Name)
		if err != nil {
			return pc, nil, err
		}
		in.stack.Push(v)

	case OpAdd, OpMultiply, OpCmpEq:
		a, b, err := in.pop2()
		if err != nil {
			return pc, nil, err
		}
		in.stack.Push(binary(inst.Op, a, b))

	case OpReturnValue:
		v, err := in.stack.Pop()
		if err != nil {
			return pc, nil, err
		}
		return pc, &v, nil

	case OpJumpIfFalse:
		cond, err := in.stack.Pop()
		if err != nil {
			return pc, nil, err
		}
		if cond == 0 {
			return jump(inst.Target, size)
		}

	case OpGoto:
		return jump(inst.Target, size)

	default:
		panic("vm: unknown opcode " + inst.Op.String())
	}

	return pc + 1, nil, nil
}

// pop2 pops a then b. Both are popped even though only CmpEq names them.
func (in *Interpreter) pop2() (Value, Value, error) {
	a, err := in.stack.Pop()
	if err != nil {
		return 0, 0, err
	}
	b, err := in.stack.Pop()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func binary(op Op, a, b Value) Value {
	switch op {
	case OpAdd:
		return a + b
	case OpMultiply:
		return a * b
	default:
		if a == b {
			return 1
		}
		return 0
	}
}

func jump(target, size int) (int, *Value, error) {
	if target < 0 || target > size {
		return 0, nil, ErrInvalidJumpTarget
	}
	return target, nil, nil
}
