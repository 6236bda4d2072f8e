package vm

import (
	"fmt"
	"strings"
)

// Program is an ordered sequence of decoded instructions
type Program []Instruction

// Validate rejects unknown opcodes and jump targets outside [0, len(p)].
// Execute does not require it; an unchecked bad target fails only when the
// jump is taken.
func Validate(p Program) error {
	for pc, inst := range p {
		if int(inst.Op) >= len(Ops) {
			return fmt.Errorf("validate: pc %d: unknown opcode %s", pc, inst.Op)
		}
		if inst.IsJump() && (inst.Target < 0 || inst.Target > len(p)) {
			return &ExecError{
				PC:          pc,
				Instruction: inst,
				Err:         ErrInvalidJumpTarget,
			}
		}
	}
	return nil
}

// Strings renders one instruction per element
func (p Program) Strings() []string {
	out := make([]string, len(p))
	for i, inst := range p {
		out[i] = inst.String()
	}
	return out
}

func (p Program) String() string {
	var b strings.Builder
	for pc, inst := range p {
		fmt.Fprintf(&b, "%3d  %s\n", pc, inst)
	}
	return b.String()
}
