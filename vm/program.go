package vm

import (
	"fmt"
	"io"
	"iter"
)

const (
	PROGRAM_LIMIT = 255 // Maximum instructions in a program.
)

// Program is an assembled instruction listing.
type Program struct {
	Opcodes []Opcode
}

// Len returns the number of instructions in the program.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Opcodes)
}

// Instruction returns the instruction at pc.
func (prog *Program) Instruction(pc uint8) (ins Instruction, ok bool) {
	if int(pc) >= prog.Len() {
		return
	}

	return prog.Opcodes[pc].Instruction, true
}

// Debug returns the opcode, with its source location, at pc.
func (prog *Program) Debug(pc uint8) (op *Opcode) {
	if int(pc) < prog.Len() {
		op = &prog.Opcodes[pc]
	}

	return
}

// Instructions iterates over the program's instructions in order.
func (prog *Program) Instructions() iter.Seq2[uint8, Instruction] {
	return func(yield func(pc uint8, ins Instruction) bool) {
		for n := range prog.Len() {
			if !yield(uint8(n), prog.Opcodes[n].Instruction) {
				return
			}
		}
	}
}

// Binary returns the program image, one word per instruction.
func (prog *Program) Binary() (bins []uint16) {
	for _, ins := range prog.Instructions() {
		bins = append(bins, ins.Word())
	}

	return
}

// LoadBinary creates a program from an image made by Binary.
// Source locations are not recoverable, so line numbers are zero.
func LoadBinary(bins []uint16) (prog *Program, err error) {
	if len(bins) > PROGRAM_LIMIT {
		err = ErrProgramTooLong
		return
	}

	prog = &Program{
		Opcodes: make([]Opcode, 0, len(bins)),
	}
	for n, word := range bins {
		var ins Instruction
		ins, err = MakeInstruction(word)
		if err != nil {
			prog = nil
			return
		}
		prog.Opcodes = append(prog.Opcodes, Opcode{
			Pc:          uint8(n),
			Instruction: ins,
		})
	}

	return
}

// Listing writes a disassembly of the program to w.
func (prog *Program) Listing(w io.Writer) (err error) {
	for _, op := range prog.Opcodes {
		line := fmt.Sprintf("%3d: %-10v", op.Pc, op.Instruction.String())
		if op.LineNo > 0 {
			line += fmt.Sprintf(" ; line %d", op.LineNo)
		}
		_, err = fmt.Fprintln(w, line)
		if err != nil {
			return
		}
	}

	return
}
