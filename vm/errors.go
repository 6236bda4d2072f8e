package vm

import (
	"errors"
	"fmt"
)

var (
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrInvalidJumpTarget = errors.New("invalid jump target")
)

// ExecError records where execution stopped. Err wraps one of the
// sentinel errors above.
type ExecError struct {
	PC          int
	Instruction Instruction
	Err         error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("pc %d %s: %s", e.PC, e.Instruction, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
