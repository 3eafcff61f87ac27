package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	table := [](struct {
		code []uint8
		text string
	}){
		{[]uint8{uint8(MOV_LIT_REG), 0x00, 0x01, uint8(REG_R1)}, "mov_lit_reg 0x0001 r1"},
		{[]uint8{uint8(ADD_REG_REG), uint8(REG_R1), uint8(REG_R2)}, "add_reg_reg r1 r2"},
		{[]uint8{uint8(JMP_NOT_EQ), 0x00, 0x64, 0x00, 0x18}, "jmp_not_eq 0x0064 0x0018"},
		{[]uint8{uint8(LSF_REG_LIT), uint8(REG_R3), 0x04}, "lsf_reg_lit r3 0x04"},
		{[]uint8{uint8(POP), 14}, "pop r1"},
		{[]uint8{uint8(HLT)}, "hlt"},
		{[]uint8{0xee}, ".byte 0xee"},
	}

	for _, entry := range table {
		assert := assert.New(t)

		mem := make(testMemory, 8)
		copy(mem, entry.code)

		text, size, err := Disassemble(mem, 0)
		assert.NoError(err)
		assert.Equal(entry.text, text)
		assert.Equal(len(entry.code), size)
	}
}

func TestDisassembleBasic(t *testing.T) {
	assert := assert.New(t)

	mem := make(testMemory, 8)
	copy(mem, []uint8{uint8(PSH_REG), uint8(REG_SP)})
	cpu := NewCpuBasic(mem)

	text, _, err := cpu.Disassemble(0)
	assert.NoError(err)
	assert.Equal("psh_reg ip", text)
}

func TestDisassembleTruncated(t *testing.T) {
	assert := assert.New(t)

	mem := testMemory{uint8(MOV_LIT_REG), 0x00}

	_, _, err := Disassemble(mem, 0)
	assert.ErrorIs(err, errTestAddress)
}
