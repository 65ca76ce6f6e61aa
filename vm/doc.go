// Package vm implements the Frame byte-stack machine and its two-pass assembler.
//
// A Frame holds an operand stack and a return stack of 8-bit values, a
// 256-byte memory, and an 8-bit program counter indexing into an assembled
// Program. Programs hold at most 255 instructions, so the program counter
// always fits in a byte, including the fall-off-the-end position.
//
// The assembler reads a small line-oriented language: one instruction per
// line, `label:` definitions, `;` comments, `.equ` equates and `$(...)`
// compile-time expressions. Labels may be referenced before they are defined.
package vm
