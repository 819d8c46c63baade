// Package cpu implements the processor and assembler for the 15-bit word machine.
//
// The CPU consists of a program counter (PC), 32768 words of memory, eight
// registers (r0-r7), and an unbounded stack. All values are 15-bit; operand
// words 32768..32775 select registers.
//
// Each instruction is decoded by the shape of its operands: an operand is
// either a destination (resolved to an Address), or a value (resolved to
// the register contents it selects, or the literal itself).
//
// The assembler provides a small assembly language for the instruction set,
// supporting macros, labels, equates, and compile-time expression evaluation.
package cpu
