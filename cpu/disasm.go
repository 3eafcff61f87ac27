package cpu

import (
	"fmt"
	"strings"
)

// ByteReader reads single bytes of the address space.
type ByteReader interface {
	GetByte(address uint16) (uint8, error)
}

// Disassemble renders the instruction at address, assuming the full
// register set. size is the number of bytes consumed.
func Disassemble(mem ByteReader, address uint16) (text string, size int, err error) {
	return disassemble(mem, address, REG_COUNT)
}

// Disassemble renders the instruction at address using this CPU's register
// decoding, reading memory without side effects on storage devices.
func (cpu *Cpu) Disassemble(address uint16) (text string, size int, err error) {
	return disassemble(cpu.Memory, address, cpu.Registers.Count())
}

func disassemble(mem ByteReader, address uint16, count int) (text string, size int, err error) {
	value, err := mem.GetByte(address)
	if err != nil {
		return
	}
	op := Opcode(value)
	size = 1

	if !op.Valid() {
		text = fmt.Sprintf(".byte 0x%02x", value)
		return
	}

	words := []string{op.Mnemonic()}
	next := func() (b uint8) {
		if err != nil {
			return
		}
		b, err = mem.GetByte(address + uint16(size))
		size++
		return
	}

	for _, operand := range op.Operands() {
		var word string
		switch operand {
		case OPERAND_REG:
			word = Register(int(next()) % count).String()
		case OPERAND_LIT8:
			word = fmt.Sprintf("0x%02x", next())
		case OPERAND_LIT16, OPERAND_ADDR:
			hi := next()
			lo := next()
			word = fmt.Sprintf("0x%04x", uint16(hi)<<8|uint16(lo))
		}
		if err != nil {
			return
		}
		words = append(words, word)
	}

	text = strings.Join(words, " ")
	return
}
