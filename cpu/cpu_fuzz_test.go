package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// FuzzCpu runs arbitrary code and checks that every instruction either
// executes or reports a fault at the address it was fetched from.
func FuzzCpu(f *testing.F) {
	f.Add([]uint8{uint8(MOV_LIT_REG), 0x00, 0x01, 0x02, uint8(HLT)}, true)
	f.Add([]uint8{uint8(PSH_LIT), 0xaa, 0xaa, uint8(RET)}, false)
	f.Add([]uint8{0xff, 0x00}, true)
	f.Add([]uint8{uint8(CAL_LIT), 0x00, 0x00}, true)

	f.Fuzz(func(t *testing.T, code []uint8, stack bool) {
		assert := assert.New(t)

		mem := make(testMemory, 0x400)
		copy(mem, code)

		var cpu *Cpu
		if stack {
			cpu = NewCpu(mem, 0x3fe)
		} else {
			cpu = NewCpuBasic(mem)
		}

		for range 1000 {
			ip := cpu.Get(REG_IP)
			done, err := cpu.Step()
			if err != nil {
				var fault *ErrFault
				assert.True(errors.As(err, &fault))
				assert.Equal(ip, fault.Ip)
				return
			}
			if done {
				assert.True(cpu.Halted())
				return
			}
		}
	})
}
