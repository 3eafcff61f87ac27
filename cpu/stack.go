package cpu

// The stack grows downward from StackTop. sp always addresses the next
// free word; a push writes at sp and then moves it down by two.

// Push writes value at sp, then moves sp down one word.
func (cpu *Cpu) Push(value uint16) (err error) {
	if !cpu.HasStack() {
		err = ErrStackMissing
		return
	}

	sp := cpu.Get(REG_SP)
	err = cpu.Memory.SetWord(sp, value)
	if err != nil {
		return
	}

	cpu.Set(REG_SP, sp-2)
	cpu.frameSize += 2
	return
}

// Pop moves sp up one word, then reads the word there. Popping with sp at
// or above StackTop is an underflow.
func (cpu *Cpu) Pop() (value uint16, err error) {
	if !cpu.HasStack() {
		err = ErrStackMissing
		return
	}

	if cpu.Get(REG_SP) >= cpu.StackTop {
		err = ErrStackUnderflow
		return
	}

	sp := cpu.Get(REG_SP) + 2
	value, err = cpu.Memory.GetWord(sp)
	if err != nil {
		return
	}

	cpu.Set(REG_SP, sp)
	cpu.frameSize -= 2
	return
}

// pushState opens a call frame: r1-r8, ip, then the frame size (counting
// the frame size word itself). The new frame starts empty at sp.
func (cpu *Cpu) pushState() (err error) {
	for reg := REG_R1; reg <= REG_R8; reg++ {
		err = cpu.Push(cpu.Get(reg))
		if err != nil {
			return
		}
	}

	err = cpu.Push(cpu.Get(REG_IP))
	if err != nil {
		return
	}

	err = cpu.Push(cpu.frameSize + 2)
	if err != nil {
		return
	}

	cpu.Set(REG_FP, cpu.Get(REG_SP))
	cpu.frameSize = 0
	return
}

// popState closes the current call frame, restoring ip and r1-r8, dropping
// the caller-pushed arguments (preceded by their count), and restoring the
// caller's frame pointer.
func (cpu *Cpu) popState() (err error) {
	if !cpu.HasStack() {
		err = ErrStackMissing
		return
	}

	fp := cpu.Get(REG_FP)
	cpu.Set(REG_SP, fp)

	size, err := cpu.Pop()
	if err != nil {
		return
	}
	cpu.frameSize = size

	restore := []Register{REG_IP, REG_R8, REG_R7, REG_R6, REG_R5, REG_R4, REG_R3, REG_R2, REG_R1}
	for _, reg := range restore {
		var value uint16
		value, err = cpu.Pop()
		if err != nil {
			return
		}
		cpu.Set(reg, value)
	}

	args, err := cpu.Pop()
	if err != nil {
		return
	}
	for range args {
		_, err = cpu.Pop()
		if err != nil {
			return
		}
	}

	cpu.Set(REG_FP, fp+size)
	return
}
