package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram(t *testing.T) {
	assert := assert.New(t)

	var prog *Program
	assert.Equal(0, prog.Len())
	assert.Nil(prog.Debug(0))
	_, ok := prog.Instruction(0)
	assert.False(ok)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("push 1\n\nloop: dec\njnz loop"))
	assert.NoError(err)

	ins, ok := prog.Instruction(1)
	assert.True(ok)
	assert.Equal(Instruction{KIND_DEC, 0}, ins)

	_, ok = prog.Instruction(3)
	assert.False(ok)

	dbg := prog.Debug(2)
	if assert.NotNil(dbg) {
		assert.Equal(4, dbg.LineNo)
		assert.Equal([]string{"jnz", "loop"}, dbg.Words)
	}
}

func TestProgramBinary(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("push 7\nstore 10\nloop: load 10\njz loop\nhalt"))
	assert.NoError(err)

	bins := prog.Binary()
	assert.Equal([]uint16{0x0207, 0x0f0a, 0x0e0a, 0x0502, 0x0a00}, bins)

	loaded, err := LoadBinary(bins)
	assert.NoError(err)
	assert.Equal(prog.Len(), loaded.Len())
	for pc, ins := range loaded.Instructions() {
		assert.Equal(prog.Opcodes[pc].Instruction, ins)
		assert.Equal(pc, loaded.Opcodes[pc].Pc)
		assert.Equal(0, loaded.Opcodes[pc].LineNo)
	}

	_, err = LoadBinary([]uint16{0x0207, 0xff00})
	assert.ErrorIs(err, ErrOpcode(0))

	_, err = LoadBinary(make([]uint16, PROGRAM_LIMIT+1))
	assert.ErrorIs(err, ErrProgramTooLong)
}

func TestProgramListing(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("; header\ntop: push 1\njmp top\nret"))
	assert.NoError(err)

	out := &bytes.Buffer{}
	assert.NoError(prog.Listing(out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(3, len(lines))
	assert.Equal("  0: push 1     ; line 2", lines[0])
	assert.Equal("  1: jmp 0      ; line 3", lines[1])
	assert.Equal("  2: ret        ; line 4", lines[2])
}
