package vm

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

const (
	MEMORY_SIZE = 256  // Bytes of frame memory.
	PC_LIMIT    = 0xff // Largest program counter value.
)

// Frame is the complete machine state for one program's execution.
type Frame struct {
	Verbose bool // Set to enable verbose logging.

	Program  *Program           // Assembled program; never modified by execution.
	Pc       uint8              // Program counter.
	Stack    Stack              // Operand stack.
	RetStack Stack              // Return address stack.
	Memory   [MEMORY_SIZE]uint8 // Byte addressable memory.

	Ticks int // Executed instruction counter.
}

// NewFrame creates a new frame with an empty program.
func NewFrame() (fr *Frame) {
	fr = &Frame{
		Program: &Program{},
	}

	return
}

// Assemble assembles the source text, both passes, into the frame's program.
func (fr *Frame) Assemble(source string) (err error) {
	asm := &Assembler{Verbose: fr.Verbose}
	for pass := 1; pass <= 2; pass++ {
		err = asm.Assemble(source, pass)
		if err != nil {
			return
		}
	}

	fr.Program = asm.Program()

	return
}

// Reset clears the stacks, memory and counters. The program is kept.
func (fr *Frame) Reset() {
	if fr.Verbose {
		log.Print(f("frame: reset"))
	}

	fr.Pc = 0
	fr.Stack.Reset()
	fr.RetStack.Reset()
	clear(fr.Memory[:])
	fr.Ticks = 0
}

// String returns the current frame state as a string.
func (fr *Frame) String() (text string) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%8s: %d\n", "pc", fr.Pc)
	fmt.Fprintf(&sb, "%8s: %v\n", "stack", fr.Stack.Data)
	fmt.Fprintf(&sb, "%8s: %v\n", "retstack", fr.RetStack.Data)
	text = sb.String()

	return
}

// pop pops the operand stack.
func (fr *Frame) pop() (value uint8, err error) {
	value, ok := fr.Stack.Pop()
	if !ok {
		err = ErrStackEmpty
	}
	return
}

// peek returns the top of the operand stack.
func (fr *Frame) peek() (value uint8, err error) {
	value, ok := fr.Stack.Peek()
	if !ok {
		err = ErrStackEmpty
	}
	return
}

// address validates a memory address operand.
func (fr *Frame) address(addr uint8) (index int, err error) {
	index = int(addr)
	if index >= len(fr.Memory) {
		err = ErrMemoryRange
	}
	return
}

// Execute executes a single decoded instruction.
// On error the program counter is unchanged.
func (fr *Frame) Execute(ins Instruction) (halted bool, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction(ins), err)
		}
	}()

	if fr.Verbose {
		log.Printf("%03d: %v", fr.Pc, ins)
	}

	next_pc := int(fr.Pc) + 1

	switch ins.Kind {
	case KIND_PUSH:
		fr.Stack.Push(ins.Operand)
	case KIND_POP:
		_, err = fr.pop()
	case KIND_INC, KIND_DEC:
		var value uint8
		value, err = fr.peek()
		if err != nil {
			return
		}
		if ins.Kind == KIND_INC {
			value++
		} else {
			value--
		}
		fr.Stack.Poke(0, value)
	case KIND_JMP:
		next_pc = int(ins.Operand)
	case KIND_JZ, KIND_JNZ:
		var value uint8
		value, err = fr.peek()
		if err != nil {
			return
		}
		if (value == 0) == (ins.Kind == KIND_JZ) {
			next_pc = int(ins.Operand)
		}
	case KIND_CALL:
		if next_pc > PC_LIMIT {
			err = ErrPcOverflow
			return
		}
		fr.RetStack.Push(uint8(next_pc))
		next_pc = int(ins.Operand)
	case KIND_RET:
		pc, ok := fr.RetStack.Pop()
		if !ok {
			err = ErrRetStackEmpty
			return
		}
		next_pc = int(pc)
	case KIND_NAND:
		var a, b uint8
		a, err = fr.pop()
		if err != nil {
			return
		}
		b, err = fr.pop()
		if err != nil {
			return
		}
		fr.Stack.Push(^(a & b))
	case KIND_HALT:
		halted = true
		return
	case KIND_PICK:
		value, ok := fr.Stack.Pick(int(ins.Operand))
		if !ok {
			err = ErrStackDepth
			return
		}
		fr.Stack.Push(value)
	case KIND_POKE:
		var value uint8
		value, err = fr.pop()
		if err != nil {
			return
		}
		if !fr.Stack.Poke(int(ins.Operand), value) {
			err = ErrStackDepth
			return
		}
	case KIND_SWAP:
		var a, b uint8
		a, err = fr.pop()
		if err != nil {
			return
		}
		b, err = fr.pop()
		if err != nil {
			return
		}
		fr.Stack.Push(a)
		fr.Stack.Push(b)
	case KIND_LOAD:
		var index int
		index, err = fr.address(ins.Operand)
		if err != nil {
			return
		}
		fr.Stack.Push(fr.Memory[index])
	case KIND_STORE:
		var index int
		index, err = fr.address(ins.Operand)
		if err != nil {
			return
		}
		var value uint8
		value, err = fr.pop()
		if err != nil {
			return
		}
		fr.Memory[index] = value
	default:
		err = ErrOpcode(ins.Kind)
		return
	}

	if err != nil {
		return
	}

	if next_pc > PC_LIMIT {
		err = ErrPcOverflow
		return
	}

	fr.Pc = uint8(next_pc)

	return
}

// Tick fetches and executes the instruction at the program counter.
// Done is set when the program counter is past the end of the program,
// or a halt instruction executed.
func (fr *Frame) Tick() (done bool, err error) {
	ins, ok := fr.Program.Instruction(fr.Pc)
	if !ok {
		done = true
		return
	}

	done, err = fr.Execute(ins)
	if err != nil {
		return
	}

	fr.Ticks++

	return
}

// Run ticks the frame until the program is done, or an error occurs.
func (fr *Frame) Run() (err error) {
	if fr.Verbose {
		defer func() {
			log.Print(f("frame: stopped after %v ticks\n%v", fr.Ticks, fr.String()))
		}()
	}

	for done := false; !done; {
		done, err = fr.Tick()
		if err != nil {
			return
		}
	}

	return
}
