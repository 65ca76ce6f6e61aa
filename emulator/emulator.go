// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/fatih/color"

	"github.com/ezrec/frame/internal"
	"github.com/ezrec/frame/vm"
)

// Emulator state. Frame + execution trace.
type Emulator struct {
	Verbose   bool      // If set, enables verbose logging.
	*vm.Frame           // Reference to the frame simulation.
	Trace     io.Writer // If set, each executed instruction is traced here.
	Color     bool      // If set, the trace is colorized.

	predefine map[string]string
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Frame: vm.NewFrame(),
	}

	return
}

// Predefine adds an equate to every program assembled by the emulator.
func (emu *Emulator) Predefine(equ string, value string) {
	if emu.predefine == nil {
		emu.predefine = make(map[string]string)
	}
	emu.predefine[equ] = value
}

// Defines returns an iterator over all of the defines, ordered by name.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Sorted(internal.IterSeq2Concat(vm.Defines(), maps.All(emu.predefine)))
}

// Assemble assembles a program from the input and resets the frame to run it.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &vm.Assembler{Verbose: emu.Verbose}
	for equ, value := range emu.Defines() {
		asm.Predefine(equ, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Load(prog)

	return
}

// Load installs an assembled program and resets the frame.
func (emu *Emulator) Load(prog *vm.Program) {
	emu.Frame.Program = prog
	emu.Frame.Reset()
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Frame.Ticks
}

// LineNo returns the source line number of the instruction at the program counter.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Pc)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// trace writes a block describing the frame and the instruction about to execute.
func (emu *Emulator) trace(ins vm.Instruction) (err error) {
	key := color.New(color.FgCyan)
	value := color.New(color.FgYellow, color.Bold)
	if !emu.Color {
		key.DisableColor()
		value.DisableColor()
	}

	lines := []struct {
		key   string
		value any
	}{
		{"pc", emu.Pc},
		{"stack", emu.Stack.Data},
		{"instruction", ins},
	}

	for _, line := range lines {
		_, err = fmt.Fprintf(emu.Trace, "%v %v\n", key.Sprintf("%v:", line.key), value.Sprint(line.value))
		if err != nil {
			return
		}
	}

	_, err = fmt.Fprintln(emu.Trace)

	return
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set frame verbosity
	emu.Frame.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.Trace != nil {
		ins, ok := emu.Program.Instruction(emu.Pc)
		if ok {
			err = emu.trace(ins)
			if err != nil {
				return
			}
		}
	}

	done, err = emu.Frame.Tick()

	return
}

// Run ticks the emulator until the program halts, falls off the end, or fails.
func (emu *Emulator) Run() (err error) {
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	return
}
