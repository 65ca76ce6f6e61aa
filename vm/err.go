package vm

import (
	"errors"

	"github.com/ezrec/frame/translate"
)

var f = translate.From

var (
	// Frame runtime errors
	ErrStackEmpty    = errors.New(f("stack empty"))
	ErrRetStackEmpty = errors.New(f("return stack empty"))
	ErrStackDepth    = errors.New(f("stack depth out of range"))
	ErrMemoryRange   = errors.New(f("memory address out of range"))
	ErrPcOverflow    = errors.New(f("program counter overflow"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrProgramTooLong     = errors.New(f("program too long"))
	ErrPassInvalid        = errors.New(f("assembler pass invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrOpcode is an instruction kind outside of the instruction set.
type ErrOpcode Kind

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x", int(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrInstruction identifies the instruction that raised a runtime error.
type ErrInstruction Instruction

func (ei ErrInstruction) Error() string {
	return f("at '%v'", Instruction(ei).String())
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a byte value", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
