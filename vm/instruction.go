package vm

import (
	"fmt"
	"strconv"
)

// Value is the only runtime datum. Arithmetic wraps modulo 2^32.
type Value uint32

// Op identifies an instruction variant
type Op byte

const (
	OpLoadVal Op = iota
	OpWriteVar
	OpReadVar
	OpAdd
	OpMultiply
	OpCmpEq
	OpReturnValue
	OpJumpIfFalse
	OpGoto
)

var Ops = []Op{
	OpLoadVal,
	OpWriteVar,
	OpReadVar,
	OpAdd,
	OpMultiply,
	OpCmpEq,
	OpReturnValue,
	OpJumpIfFalse,
	OpGoto,
}

func (op Op) String() string {
	var out string
	switch op {
	case OpLoadVal:
		out = "LoadVal"
	case OpWriteVar:
		out = "WriteVar"
	case OpReadVar:
		out = "ReadVar"
	case OpAdd:
		out = "Add"
	case OpMultiply:
		out = "Multiply"
	case OpCmpEq:
		out = "CmpEq"
	case OpReturnValue:
		out = "ReturnValue"
	case OpJumpIfFalse:
		out = "JumpIfFalse"
	case OpGoto:
		out = "Goto"
	default:
		out = fmt.Sprintf("Op(%d)", byte(op))
	}
	return out
}

// Instruction is an opcode together with its operand. Only the operand
// field matching Op is meaningful:
//
//	LoadVal           Value
//	WriteVar, ReadVar Name
//	JumpIfFalse, Goto Target
type Instruction struct {
	Op     Op
	Value  Value
	Name   string
	Target int
}

func LoadVal(v Value) Instruction {
	return Instruction{Op: OpLoadVal, Value: v}
}

func WriteVar(name string) Instruction {
	return Instruction{Op: OpWriteVar, Name: name}
}

func ReadVar(name string) Instruction {
	return Instruction{Op: OpReadVar, Name: name}
}

func Add() Instruction {
	return Instruction{Op: OpAdd}
}

func Multiply() Instruction {
	return Instruction{Op: OpMultiply}
}

func CmpEq() Instruction {
	return Instruction{Op: OpCmpEq}
}

func ReturnValue() Instruction {
	return Instruction{Op: OpReturnValue}
}

func JumpIfFalse(target int) Instruction {
	return Instruction{Op: OpJumpIfFalse, Target: target}
}

func Goto(target int) Instruction {
	return Instruction{Op: OpGoto, Target: target}
}

// IsJump reports whether the instruction carries a jump target
func (inst Instruction) IsJump() bool {
	return inst.Op == OpJumpIfFalse || inst.Op == OpGoto
}

func (inst Instruction) String() string {
	switch inst.Op {
	case OpLoadVal:
		return fmt.Sprintf("%s(%d)", inst.Op, inst.Value)
	case OpWriteVar, OpReadVar:
		return fmt.Sprintf("%s(%s)", inst.Op, inst.Name)
	case OpJumpIfFalse, OpGoto:
		return inst.Op.String() + "(" + strconv.Itoa(inst.Target) + ")"
	default:
		return inst.Op.String()
	}
}
