// Package cpu implements the vm16 processor and its assembler.
//
// The CPU has an instruction pointer (ip), an accumulator (acc), eight
// 16-bit general-purpose registers (r1-r8), and, when configured with a
// stack, a stack pointer (sp) and frame pointer (fp). All memory access goes
// through a Memory, normally a mapper.Mapper, and every value is big-endian.
//
// Instructions are a one-byte opcode followed by zero to four operand bytes.
// Subroutine calls save r1-r8, ip and the running frame size on the stack;
// return restores them and drops the caller-pushed arguments.
//
// The assembler provides a line-oriented assembly language for the
// instruction set, supporting labels, equates, macros, and compile-time
// expression evaluation.
package cpu
