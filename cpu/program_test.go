package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramDebug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: []Line{
			{LineNo: 1, Address: 0x0000, Words: []string{"mov_lit_reg", "1", "r1"}, Bytes: []uint8{0x10, 0x00, 0x01, 0x02}},
			{LineNo: 3, Address: 0x0004, Words: []string{"hlt"}, Bytes: []uint8{0x1c}},
			{LineNo: 5, Address: 0x0100, Words: []string{".byte", "1", "2"}, Bytes: []uint8{0x01, 0x02}},
		},
	}

	dbg := prog.Debug(0x0002)
	if assert.NotNil(dbg.Line) {
		assert.Equal(1, dbg.LineNo)
		assert.Equal(2, dbg.Index)
	}

	dbg = prog.Debug(0x0004)
	if assert.NotNil(dbg.Line) {
		assert.Equal(3, dbg.LineNo)
		assert.Equal(0, dbg.Index)
	}

	dbg = prog.Debug(0x0101)
	if assert.NotNil(dbg.Line) {
		assert.Equal(5, dbg.LineNo)
		assert.Equal(1, dbg.Index)
	}

	dbg = prog.Debug(0x0005)
	assert.Nil(dbg.Line)
}

func TestProgramEntry(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	_, ok := prog.Entry()
	assert.False(ok)

	prog = assemble(t, ".org 0x200", "hlt")
	entry, ok := prog.Entry()
	assert.True(ok)
	assert.Equal(uint16(0x200), entry)

	prog = assemble(t, "hlt", "start: hlt")
	entry, ok = prog.Entry()
	assert.True(ok)
	assert.Equal(uint16(1), entry)
}

func TestProgramLoad(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"    mov_lit_reg 0xbeef r1",
		"    .org 0x10",
		"    .byte 0xaa",
	)
	assert.Equal(5, prog.Size())

	mem := make(testMemory, 0x20)
	err := prog.Load(mem)
	assert.NoError(err)
	assert.Equal([]uint8{0x10, 0xbe, 0xef, 0x02}, []uint8(mem[0:4]))
	assert.Equal(uint8(0xaa), mem[0x10])

	small := make(testMemory, 0x08)
	err = prog.Load(small)
	assert.ErrorIs(err, errTestAddress)
}

func TestProgramBytesEarlyReturn(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, "hlt", "hlt", "hlt")

	count := 0
	for range prog.Bytes() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}
