package cpu

import (
	"fmt"
	"iter"
	"log"
	"strings"
)

// Memory is the address space seen by the CPU.
type Memory interface {
	GetByte(address uint16) (uint8, error)
	SetByte(address uint16, value uint8) error
	GetWord(address uint16) (uint16, error)
	SetWord(address uint16, value uint16) error
}

// Cpu is the simulation context for the vm16 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory    Memory     // Address space for fetch, data and stack.
	Registers *Registers // Register file.
	StackTop  uint16     // Initial sp and fp.

	Ticks int // Instructions executed since reset.

	frameSize uint16 // Bytes pushed since the last frame boundary.
	halted    bool
}

// NewCpu creates a CPU with a stack whose first push lands at stackTop.
func NewCpu(memory Memory, stackTop uint16) (cpu *Cpu) {
	cpu = &Cpu{
		Memory:    memory,
		Registers: NewRegisters(REG_COUNT),
		StackTop:  stackTop,
	}
	cpu.Reset(0)

	return
}

// NewCpuBasic creates a CPU with no sp or fp. Stack instructions fault.
func NewCpuBasic(memory Memory) (cpu *Cpu) {
	cpu = &Cpu{
		Memory:    memory,
		Registers: NewRegisters(REG_COUNT_BASIC),
	}
	cpu.Reset(0)

	return
}

// HasStack reports whether the CPU was built with sp and fp.
func (cpu *Cpu) HasStack() bool {
	return cpu.Registers.Has(REG_FP)
}

// Reset the CPU state.
// - Clears the registers.
// - Points ip at entry.
// - Points sp and fp at the stack top.
// - Zeros the frame size and tick counter.
func (cpu *Cpu) Reset(entry uint16) {
	if cpu.Verbose {
		log.Printf("cpu: reset entry=0x%04x", entry)
	}

	cpu.Registers.Reset()
	cpu.Registers.Set(REG_IP, entry)
	if cpu.HasStack() {
		cpu.Registers.Set(REG_SP, cpu.StackTop)
		cpu.Registers.Set(REG_FP, cpu.StackTop)
	}
	cpu.frameSize = 0
	cpu.Ticks = 0
	cpu.halted = false
}

// Get reads a register.
func (cpu *Cpu) Get(reg Register) uint16 {
	return cpu.Registers.Get(reg)
}

// Set writes a register.
func (cpu *Cpu) Set(reg Register, value uint16) {
	cpu.Registers.Set(reg, value)
}

// FrameSize is the number of bytes pushed since the current frame opened.
func (cpu *Cpu) FrameSize() uint16 {
	return cpu.frameSize
}

// Halted reports whether HLT has been executed since the last reset.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return func(yield func(name, value string) bool) {
		for reg := range cpu.Registers.All() {
			name := "REG_" + strings.ToUpper(reg.String())
			if !yield(name, fmt.Sprintf("%#02x", int(reg))) {
				return
			}
		}
		if cpu.HasStack() {
			if !yield("STACK_TOP", fmt.Sprintf("%#04x", cpu.StackTop)) {
				return
			}
		}
		for op := range Opcodes() {
			if !yield("OP_"+op.String(), fmt.Sprintf("%#02x", uint8(op))) {
				return
			}
		}
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for reg, value := range cpu.Registers.All() {
		text += fmt.Sprintf("% 5s: 0x%04X\n", reg, value)
	}
	text += fmt.Sprintf("% 5s: 0x%04X\n", "frame", cpu.frameSize)

	return
}

// Fetch8 reads the byte at ip and advances ip by one.
func (cpu *Cpu) Fetch8() (value uint8, err error) {
	ip := cpu.Get(REG_IP)
	value, err = cpu.Memory.GetByte(ip)
	if err != nil {
		return
	}

	cpu.Set(REG_IP, ip+1)
	return
}

// Fetch16 reads the big-endian word at ip and advances ip by two.
func (cpu *Cpu) Fetch16() (value uint16, err error) {
	ip := cpu.Get(REG_IP)
	value, err = cpu.Memory.GetWord(ip)
	if err != nil {
		return
	}

	cpu.Set(REG_IP, ip+2)
	return
}

// fetchRegister reads a register selector byte.
func (cpu *Cpu) fetchRegister() (reg Register, err error) {
	selector, err := cpu.Fetch8()
	if err != nil {
		return
	}

	reg = cpu.Registers.Select(selector)
	return
}

// fetchOperands reads the operands of op. Register operands are returned as
// the selected register number, everything else as the literal value.
func (cpu *Cpu) fetchOperands(op Opcode) (args [3]uint16, err error) {
	for n, operand := range op.Operands() {
		switch operand {
		case OPERAND_REG:
			var reg Register
			reg, err = cpu.fetchRegister()
			args[n] = uint16(reg)
		case OPERAND_LIT8:
			var value uint8
			value, err = cpu.Fetch8()
			args[n] = uint16(value)
		case OPERAND_LIT16, OPERAND_ADDR:
			args[n], err = cpu.Fetch16()
		}
		if err != nil {
			return
		}
	}

	return
}

// valueOf resolves a fetched operand to the value it denotes.
func (cpu *Cpu) valueOf(operand Operand, arg uint16) uint16 {
	if operand == OPERAND_REG {
		return cpu.Get(Register(arg))
	}
	return arg
}

// Step executes a single instruction. done is set once HLT is reached; no
// further instructions are fetched after that.
func (cpu *Cpu) Step() (done bool, err error) {
	if cpu.halted {
		done = true
		return
	}

	ip := cpu.Get(REG_IP)
	var op Opcode

	defer func() {
		if err != nil {
			err = &ErrFault{Ip: ip, Opcode: op, Err: err}
		}
	}()

	value, err := cpu.Fetch8()
	if err != nil {
		return
	}
	op = Opcode(value)

	if cpu.Verbose {
		text, _, _ := cpu.Disassemble(ip)
		log.Printf("cpu: %04x: %v", ip, text)
	}

	err = cpu.Execute(op)
	if err != nil {
		return
	}

	cpu.Ticks++
	done = cpu.halted
	return
}

// Run steps until HLT or a fault.
func (cpu *Cpu) Run() (err error) {
	for {
		var done bool
		done, err = cpu.Step()
		if done || err != nil {
			return
		}
	}
}

// aluOps write their result to acc.
var aluOps = map[Opcode]func(a, b uint16) uint16{
	ADD_REG_REG: add,
	ADD_LIT_REG: add,
	ADD_REG_LIT: add,
	SUB_LIT_REG: sub,
	SUB_REG_LIT: sub,
	SUB_REG_REG: sub,
	MUL_LIT_REG: mul,
	MUL_REG_LIT: mul,
	MUL_REG_REG: mul,
	AND_REG_LIT: and,
	AND_REG_REG: and,
	OR_REG_LIT:  or,
	OR_REG_REG:  or,
	XOR_REG_LIT: xor,
	XOR_REG_REG: xor,
}

// shiftOps write their result back to the first operand register.
var shiftOps = map[Opcode]func(a, b uint16) uint16{
	LSF_REG_LIT: shl,
	LSF_REG_REG: shl,
	RSF_REG_LIT: shr,
	RSF_REG_REG: shr,
}

// jumpOps compare acc against the first operand and jump to the second.
var jumpOps = map[Opcode]func(acc, value uint16) bool{
	JMP_NOT_EQ: func(acc, value uint16) bool { return acc != value },
	JNE_REG:    func(acc, value uint16) bool { return acc != value },
	JEQ_LIT:    func(acc, value uint16) bool { return acc == value },
	JEQ_REG:    func(acc, value uint16) bool { return acc == value },
	JLT_LIT:    func(acc, value uint16) bool { return acc < value },
	JLT_REG:    func(acc, value uint16) bool { return acc < value },
	JGT_LIT:    func(acc, value uint16) bool { return acc > value },
	JGT_REG:    func(acc, value uint16) bool { return acc > value },
	JLE_LIT:    func(acc, value uint16) bool { return acc <= value },
	JLE_REG:    func(acc, value uint16) bool { return acc <= value },
	JGE_LIT:    func(acc, value uint16) bool { return acc >= value },
	JGE_REG:    func(acc, value uint16) bool { return acc >= value },
}

func add(a, b uint16) uint16 { return a + b }
func sub(a, b uint16) uint16 { return a - b }
func mul(a, b uint16) uint16 { return a * b }
func and(a, b uint16) uint16 { return a & b }
func or(a, b uint16) uint16  { return a | b }
func xor(a, b uint16) uint16 { return a ^ b }
func shl(a, b uint16) uint16 { return a << b }
func shr(a, b uint16) uint16 { return a >> b }

// Execute executes a single instruction whose opcode byte has already been
// fetched; ip points at its first operand.
func (cpu *Cpu) Execute(op Opcode) (err error) {
	if !op.Valid() {
		err = ErrOpcode(op)
		return
	}

	args, err := cpu.fetchOperands(op)
	if err != nil {
		return
	}

	operands := op.Operands()
	value := func(n int) uint16 { return cpu.valueOf(operands[n], args[n]) }

	if alu, ok := aluOps[op]; ok {
		cpu.Set(REG_ACC, alu(value(0), value(1)))
		return
	}

	if shift, ok := shiftOps[op]; ok {
		target := Register(args[0])
		cpu.Set(target, shift(value(0), value(1)))
		return
	}

	if cond, ok := jumpOps[op]; ok {
		if cond(cpu.Get(REG_ACC), value(0)) {
			cpu.Set(REG_IP, args[1])
		}
		return
	}

	switch op {
	case MOV_LIT_REG, MOV_REG_REG:
		cpu.Set(Register(args[1]), value(0))
	case MOV_REG_MEM, MOV_LIT_MEM:
		err = cpu.Memory.SetWord(args[1], value(0))
	case MOV_MEM_REG:
		var word uint16
		word, err = cpu.Memory.GetWord(args[0])
		cpu.setOnSuccess(Register(args[1]), word, err)
	case MOV_REG_PTR_REG:
		var word uint16
		word, err = cpu.Memory.GetWord(value(0))
		cpu.setOnSuccess(Register(args[1]), word, err)
	case MOV_LIT_OFF_REG:
		var word uint16
		word, err = cpu.Memory.GetWord(args[0] + value(1))
		cpu.setOnSuccess(Register(args[2]), word, err)
	case INC_REG:
		cpu.Set(Register(args[0]), value(0)+1)
	case DEC_REG:
		cpu.Set(Register(args[0]), value(0)-1)
	case NOT:
		cpu.Set(REG_ACC, ^value(0))
	case PSH_LIT, PSH_REG:
		err = cpu.Push(value(0))
	case POP:
		var word uint16
		word, err = cpu.Pop()
		cpu.setOnSuccess(Register(args[0]), word, err)
	case CAL_LIT, CAL_REG:
		target := value(0)
		err = cpu.pushState()
		if err == nil {
			cpu.Set(REG_IP, target)
		}
	case RET:
		err = cpu.popState()
	case HLT:
		cpu.halted = true
		if cpu.Verbose {
			log.Printf("cpu: halt after %v ticks", cpu.Ticks)
		}
	default:
		err = ErrOpcode(op)
	}

	return
}

func (cpu *Cpu) setOnSuccess(reg Register, value uint16, err error) {
	if err == nil {
		cpu.Set(reg, value)
	}
}
