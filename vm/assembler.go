// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"MEMORY_SIZE":   fmt.Sprintf("%v", MEMORY_SIZE),
	"PROGRAM_LIMIT": fmt.Sprintf("%v", PROGRAM_LIMIT),
}

// Defines returns an iterator over the system equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(sysEquate)
}

// Assembler is a two pass assembler for the Frame machine.
//
// Pass 1 only discovers labels, pass 2 emits instructions. Both passes
// classify lines identically, so labels defined in pass 1 name the same
// program index pass 2 emits at.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]uint8  // Map of jump labels to program indexes.
	Equate    map[string]string // Map of equates.

	pc int
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// mnemonicMap maps mnemonics to instruction kinds.
var mnemonicMap = map[string]Kind{
	"inc":   KIND_INC,
	"dec":   KIND_DEC,
	"push":  KIND_PUSH,
	"pop":   KIND_POP,
	"jmp":   KIND_JMP,
	"jz":    KIND_JZ,
	"jnz":   KIND_JNZ,
	"call":  KIND_CALL,
	"ret":   KIND_RET,
	"nand":  KIND_NAND,
	"halt":  KIND_HALT,
	"pick":  KIND_PICK,
	"poke":  KIND_POKE,
	"swap":  KIND_SWAP,
	"load":  KIND_LOAD,
	"store": KIND_STORE,
}

// aliasMap maps operand-less pseudo mnemonics to their instruction.
var aliasMap = map[string][]string{
	"dup":  {"pick", "0"}, // ( a -- a a )
	"over": {"pick", "1"}, // ( a b -- a b a )
	"end":  {"halt"},
}

var (
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
)

// valueOf returns the byte value of a word.
func (asm *Assembler) valueOf(word string) (value uint8, err error) {
	v64, err := strconv.ParseUint(word, 0, 8)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint8(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, _err := strconv.ParseInt(str, 0, 64)
		if _err != nil {
			// Ignore non-integer equates. They may be labels.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine expands a line of text, handles equates and labels, and
// returns the remaining instruction words, if any.
func (asm *Assembler) parseLine(line string) (words []string, err error) {
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = nil
		return
	}

	// Labels are recorded in both passes, so a pass 2 reference sees the
	// most recent definition above it, or the last one in the file if none.
	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		asm.Label[label] = uint8(asm.pc)
		if asm.Verbose {
			log.Print(f("label %v = %v", label, asm.pc))
		}
		words = words[1:]
	}

	return
}

// parseWords decodes the words of an instruction line.
func (asm *Assembler) parseWords(words []string) (ins Instruction, err error) {
	alias, ok := aliasMap[words[0]]
	if ok {
		if len(words) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		words = alias
	}

	kind, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}
	ins.Kind = kind

	args := words[1:]

	if kind.Operand() == OPERAND_NONE {
		if len(args) > 0 {
			err = ErrOpcodeExtraArgs
		}
		return
	}

	if len(args) == 0 {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > 1 {
		err = ErrOpcodeExtraArgs
		return
	}

	word := args[0]
	equate, is_equate := asm.Equate[word]

	switch kind.Operand() {
	case OPERAND_BYTE:
		if is_equate {
			word = equate
		}
		ins.Operand, err = asm.valueOf(word)
	case OPERAND_LABEL:
		// Labels shadow equates of the same name.
		pc, ok := asm.Label[word]
		if !ok && is_equate {
			pc, ok = asm.Label[equate]
		}
		if !ok {
			err = ErrLabelMissing(word)
			return
		}
		ins.Operand = pc
	}

	return
}

// Assemble runs a single pass of the assembler over the text.
// Pass 1 collects labels, pass 2 emits opcodes into asm.Opcode.
func (asm *Assembler) Assemble(source string, pass int) (err error) {
	if pass != 1 && pass != 2 {
		err = ErrPassInvalid
		return
	}

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Label == nil {
		asm.Label = make(map[string]uint8, 16)
	}
	if pass == 1 {
		clear(asm.Label)
	}
	asm.pc = 0
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for n, text := range strings.Split(source, "\n") {
		lineno = n + 1

		if asm.Verbose && pass == 2 {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.SplitN(text, ";", 2)
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line)
		if err != nil {
			return
		}

		if len(words) == 0 {
			continue
		}

		if asm.pc >= PROGRAM_LIMIT {
			err = ErrProgramTooLong
			return
		}

		if pass == 2 {
			var ins Instruction
			ins, err = asm.parseWords(words)
			if err != nil {
				return
			}
			asm.Opcode = append(asm.Opcode, Opcode{
				LineNo:      lineno,
				Pc:          uint8(asm.pc),
				Words:       words,
				Instruction: ins,
			})
		}

		asm.pc++
	}

	return
}

// Program returns a copy of the opcodes emitted by the last pass 2.
func (asm *Assembler) Program() (prog *Program) {
	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// Parse parses an input stream into a Program, running both passes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	text := string(data)
	for pass := 1; pass <= 2; pass++ {
		err = asm.Assemble(text, pass)
		if err != nil {
			return
		}
	}

	prog = asm.Program()

	return
}
