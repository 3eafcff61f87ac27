package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	rf := NewRegisters(REG_COUNT)
	assert.Equal(REG_COUNT, rf.Count())

	for reg := range Register(REG_COUNT) {
		for _, value := range []uint16{0, 1, 0x00ff, 0xff00, 0xffff, 0x1234} {
			rf.Set(reg, value)
			assert.Equal(value, rf.Get(reg))
		}
	}

	rf.Set(REG_R1, 0x1234)
	assert.Equal([]uint8{0x12, 0x34}, rf.data[4:6])

	rf.Reset()
	for reg, value := range rf.All() {
		assert.Equal(uint16(0), value, reg.String())
	}
}

func TestRegistersSelect(t *testing.T) {
	assert := assert.New(t)

	rf := NewRegisters(REG_COUNT)
	assert.Equal(REG_IP, rf.Select(0))
	assert.Equal(REG_FP, rf.Select(11))
	assert.Equal(REG_IP, rf.Select(12))
	assert.Equal(REG_R1, rf.Select(14))
	assert.Equal(Register(255%REG_COUNT), rf.Select(255))

	basic := NewRegisters(REG_COUNT_BASIC)
	assert.True(basic.Has(REG_R8))
	assert.False(basic.Has(REG_SP))
	assert.Equal(REG_IP, basic.Select(10))
}

func TestRegisterNames(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		reg  Register
	}){
		{"ip", REG_IP},
		{"acc", REG_ACC},
		{"r1", REG_R1},
		{"R8", REG_R8},
		{"sp", REG_SP},
		{"FP", REG_FP},
	}

	for _, entry := range table {
		reg, err := ParseRegister(entry.name)
		assert.NoError(err)
		assert.Equal(entry.reg, reg)
	}

	_, err := ParseRegister("r9")
	assert.ErrorIs(err, ErrRegisterUnknown)
	assert.Equal(ErrRegister("r9"), err)

	assert.Equal("acc", REG_ACC.String())
	assert.Equal("Register(12)", Register(12).String())
}
