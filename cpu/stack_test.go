package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackPushPop(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(
		uint8(PSH_LIT), 0xaa, 0xaa,
		uint8(PSH_LIT), 0xbb, 0xbb,
		uint8(POP), uint8(REG_R1),
		uint8(HLT),
	)

	err := cpu.Run()
	assert.NoError(err)
	assert.Equal(uint16(0xbbbb), cpu.Get(REG_R1))
	assert.Equal(uint16(testStackTop-2), cpu.Get(REG_SP))
	assert.Equal(uint16(2), cpu.FrameSize())
	assert.Equal([]uint8{0xaa, 0xaa}, []uint8(mem[testStackTop:testStackTop+2]))
	assert.Equal([]uint8{0xbb, 0xbb}, []uint8(mem[testStackTop-2:testStackTop]))
}

func TestStackSymmetry(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu()
	sp := cpu.Get(REG_SP)

	values := []uint16{0x0001, 0xffff, 0x1234, 0x0000, 0x8000}
	for _, value := range values {
		assert.NoError(cpu.Push(value))
	}
	assert.Equal(sp-uint16(2*len(values)), cpu.Get(REG_SP))
	assert.Equal(uint16(2*len(values)), cpu.FrameSize())

	for n := len(values) - 1; n >= 0; n-- {
		value, err := cpu.Pop()
		assert.NoError(err)
		assert.Equal(values[n], value)
	}
	assert.Equal(sp, cpu.Get(REG_SP))
	assert.Equal(uint16(0), cpu.FrameSize())
}

func TestStackPushFault(t *testing.T) {
	assert := assert.New(t)

	mem := make(testMemory, 0x10)
	cpu := NewCpu(mem, 0x20)

	err := cpu.Push(0x1234)
	assert.ErrorIs(err, errTestAddress)
	assert.Equal(uint16(0x20), cpu.Get(REG_SP))
	assert.Equal(uint16(0), cpu.FrameSize())
}

func TestStackUnderflow(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(
		uint8(PSH_LIT), 0x12, 0x34,
		uint8(POP), uint8(REG_R1),
		uint8(POP), uint8(REG_R2),
	)

	_, err := cpu.Pop()
	assert.ErrorIs(err, ErrStackUnderflow)
	assert.Equal(uint16(testStackTop), cpu.Get(REG_SP))

	_, err = cpu.Step()
	assert.NoError(err)
	_, err = cpu.Step()
	assert.NoError(err)
	assert.Equal(uint16(0x1234), cpu.Get(REG_R1))

	_, err = cpu.Step()
	assert.ErrorIs(err, ErrStackUnderflow)
	var fault *ErrFault
	assert.ErrorAs(err, &fault)
	assert.Equal(uint16(5), fault.Ip)
	assert.Equal(uint16(0), cpu.Get(REG_R2))
	assert.Equal(uint16(testStackTop), cpu.Get(REG_SP))

	// Returning with no frame to return from.
	cpu, _ = newTestCpu(uint8(RET))
	_, err = cpu.Step()
	assert.ErrorIs(err, ErrStackUnderflow)
}

func TestStackCallReturn(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(
		uint8(PSH_LIT), 0x00, 0x00, // no arguments
		uint8(CAL_LIT), 0x00, 0x20,
		uint8(HLT),
	)
	// Callee clobbers every general purpose register.
	callee := []uint8{}
	for reg := REG_R1; reg <= REG_R8; reg++ {
		callee = append(callee, uint8(MOV_LIT_REG), 0xde, 0xad, uint8(reg))
	}
	callee = append(callee, uint8(RET))
	copy(mem[0x20:], callee)

	for reg := REG_R1; reg <= REG_R8; reg++ {
		cpu.Set(reg, uint16(reg)*0x1111)
	}

	// psh_lit, cal_lit
	for range 2 {
		_, err := cpu.Step()
		assert.NoError(err)
	}
	assert.Equal(uint16(0x20), cpu.Get(REG_IP))
	assert.Equal(uint16(testStackTop-22), cpu.Get(REG_SP))
	assert.Equal(cpu.Get(REG_SP), cpu.Get(REG_FP))
	assert.Equal(uint16(0), cpu.FrameSize())

	err := cpu.Run()
	assert.NoError(err)
	assert.Equal(uint16(7), cpu.Get(REG_IP))
	assert.Equal(uint16(testStackTop), cpu.Get(REG_SP))
	assert.Equal(uint16(testStackTop), cpu.Get(REG_FP))
	for reg := REG_R1; reg <= REG_R8; reg++ {
		assert.Equal(uint16(reg)*0x1111, cpu.Get(reg), reg.String())
	}
}

func TestStackCallArguments(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(
		uint8(PSH_LIT), 0x00, 0x03, // a
		uint8(PSH_LIT), 0x00, 0x04, // b
		uint8(PSH_LIT), 0x00, 0x02, // argument count
		uint8(MOV_LIT_REG), 0x00, 0x40, uint8(REG_R1),
		uint8(CAL_REG), uint8(REG_R1),
		uint8(HLT),
	)
	// Callee reads its arguments relative to fp.
	copy(mem[0x40:], []uint8{
		uint8(MOV_REG_REG), uint8(REG_FP), uint8(REG_R2),
		uint8(ADD_REG_LIT), uint8(REG_R2), 0x00, 0x18, // skip size, ip, r8-r1, count
		uint8(MOV_REG_PTR_REG), uint8(REG_ACC), uint8(REG_R3), // b
		uint8(ADD_REG_LIT), uint8(REG_R2), 0x00, 0x1a,
		uint8(MOV_REG_PTR_REG), uint8(REG_ACC), uint8(REG_R4), // a
		uint8(MUL_REG_REG), uint8(REG_R3), uint8(REG_R4),
		uint8(MOV_REG_MEM), uint8(REG_ACC), 0x01, 0x00,
		uint8(RET),
	})

	err := cpu.Run()
	assert.NoError(err)
	assert.Equal([]uint8{0x00, 0x0c}, []uint8(mem[0x100:0x102]))
	assert.Equal(uint16(testStackTop), cpu.Get(REG_SP))
	assert.Equal(uint16(testStackTop), cpu.Get(REG_FP))
	assert.Equal(uint16(0x40), cpu.Get(REG_R1))
	assert.Equal(uint16(0), cpu.Get(REG_R2))
	assert.Equal(uint16(16), cpu.Get(REG_IP))
}

func TestStackNestedCalls(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(
		uint8(PSH_LIT), 0x00, 0x00,
		uint8(CAL_LIT), 0x00, 0x20,
		uint8(HLT),
	)
	copy(mem[0x20:], []uint8{
		uint8(INC_REG), uint8(REG_R1),
		uint8(PSH_LIT), 0x00, 0x00,
		uint8(CAL_LIT), 0x00, 0x40,
		uint8(RET),
	})
	copy(mem[0x40:], []uint8{
		uint8(INC_REG), uint8(REG_R1),
		uint8(MOV_REG_MEM), uint8(REG_R1), 0x01, 0x00,
		uint8(RET),
	})

	err := cpu.Run()
	assert.NoError(err)
	assert.Equal([]uint8{0x00, 0x02}, []uint8(mem[0x100:0x102]))
	assert.Equal(uint16(0), cpu.Get(REG_R1))
	assert.Equal(uint16(testStackTop), cpu.Get(REG_SP))
	assert.Equal(uint16(testStackTop), cpu.Get(REG_FP))
}
