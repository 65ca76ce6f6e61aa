package vm

import (
	"fmt"
)

// Kind is an instruction kind.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_INC   = Kind(0)  // inc
	KIND_DEC   = Kind(1)  // dec
	KIND_PUSH  = Kind(2)  // push
	KIND_POP   = Kind(3)  // pop
	KIND_JMP   = Kind(4)  // jmp
	KIND_JZ    = Kind(5)  // jz
	KIND_JNZ   = Kind(6)  // jnz
	KIND_CALL  = Kind(7)  // call
	KIND_RET   = Kind(8)  // ret
	KIND_NAND  = Kind(9)  // nand
	KIND_HALT  = Kind(10) // halt
	KIND_PICK  = Kind(11) // pick
	KIND_POKE  = Kind(12) // poke
	KIND_SWAP  = Kind(13) // swap
	KIND_LOAD  = Kind(14) // load
	KIND_STORE = Kind(15) // store

	KIND_COUNT = 16 // Number of instruction kinds.
)

// OperandClass describes how the operand of an instruction is written.
type OperandClass int

const (
	OPERAND_NONE  = OperandClass(0) // No operand, encoded as 0.
	OPERAND_BYTE  = OperandClass(1) // Literal unsigned byte.
	OPERAND_LABEL = OperandClass(2) // Label, resolved to a program index.
)

// Valid returns true if the kind is part of the instruction set.
func (kind Kind) Valid() bool {
	return kind >= KIND_INC && kind < KIND_COUNT
}

// Operand returns the operand class of the kind.
func (kind Kind) Operand() OperandClass {
	switch kind {
	case KIND_PUSH, KIND_PICK, KIND_POKE, KIND_LOAD, KIND_STORE:
		return OPERAND_BYTE
	case KIND_JMP, KIND_JZ, KIND_JNZ, KIND_CALL:
		return OPERAND_LABEL
	default:
		return OPERAND_NONE
	}
}

// Instruction is a single decoded instruction.
type Instruction struct {
	Kind    Kind
	Operand uint8
}

// Word returns the 16-bit image encoding of the instruction.
func (ins Instruction) Word() uint16 {
	return (uint16(ins.Kind) << 8) | uint16(ins.Operand)
}

// MakeInstruction decodes a 16-bit image word.
func MakeInstruction(word uint16) (ins Instruction, err error) {
	ins = Instruction{
		Kind:    Kind(word >> 8),
		Operand: uint8(word & 0xff),
	}
	if !ins.Kind.Valid() {
		err = ErrOpcode(ins.Kind)
	}

	return
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() string {
	if ins.Kind.Operand() == OPERAND_NONE {
		return ins.Kind.String()
	}

	return fmt.Sprintf("%v %v", ins.Kind.String(), ins.Operand)
}

// Opcode is an assembled instruction with its source location.
type Opcode struct {
	LineNo int
	Pc     uint8
	Words  []string
	Instruction
}
