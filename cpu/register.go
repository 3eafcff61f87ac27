package cpu

import (
	"iter"
	"strings"
)

//go:generate go tool stringer -linecomment -type=Register

// Register identifies a CPU register by its slot in the register file.
type Register int

const (
	REG_IP  = Register(0)  // ip
	REG_ACC = Register(1)  // acc
	REG_R1  = Register(2)  // r1
	REG_R2  = Register(3)  // r2
	REG_R3  = Register(4)  // r3
	REG_R4  = Register(5)  // r4
	REG_R5  = Register(6)  // r5
	REG_R6  = Register(7)  // r6
	REG_R7  = Register(8)  // r7
	REG_R8  = Register(9)  // r8
	REG_SP  = Register(10) // sp
	REG_FP  = Register(11) // fp
)

const (
	REG_COUNT       = 12 // Registers with a stack.
	REG_COUNT_BASIC = 10 // Registers without a stack (no sp, fp).
)

// ParseRegister looks up a register by name.
func ParseRegister(name string) (reg Register, err error) {
	lower := strings.ToLower(name)
	for n := range REG_COUNT {
		if Register(n).String() == lower {
			reg = Register(n)
			return
		}
	}

	err = ErrRegister(name)
	return
}

// Registers is the register file: two bytes per register, big-endian, in a
// single contiguous buffer.
type Registers struct {
	data []uint8
}

// NewRegisters creates a zeroed register file holding count registers.
func NewRegisters(count int) *Registers {
	return &Registers{data: make([]uint8, count*2)}
}

// Count is the number of registers in the file.
func (rf *Registers) Count() int {
	return len(rf.data) / 2
}

// Has reports whether reg exists in this register file.
func (rf *Registers) Has(reg Register) bool {
	return reg >= 0 && int(reg) < rf.Count()
}

// Select maps an operand selector byte to a register. Selectors wrap
// modulo the register count, so every byte names some register.
func (rf *Registers) Select(selector uint8) Register {
	return Register(int(selector) % rf.Count())
}

// Get reads a register.
func (rf *Registers) Get(reg Register) uint16 {
	offset := int(reg) * 2
	return uint16(rf.data[offset])<<8 | uint16(rf.data[offset+1])
}

// Set writes a register.
func (rf *Registers) Set(reg Register, value uint16) {
	offset := int(reg) * 2
	rf.data[offset] = uint8(value >> 8)
	rf.data[offset+1] = uint8(value)
}

// Reset zeroes every register.
func (rf *Registers) Reset() {
	clear(rf.data)
}

// All iterates over the registers in slot order.
func (rf *Registers) All() iter.Seq2[Register, uint16] {
	return func(yield func(reg Register, value uint16) bool) {
		for n := range rf.Count() {
			if !yield(Register(n), rf.Get(Register(n))) {
				return
			}
		}
	}
}
