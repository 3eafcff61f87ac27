package cpu

import (
	"iter"
)

// Link is a 16-bit field in a Line's bytes to be filled with a label address.
type Link struct {
	Offset int    // Offset of the high byte in Line.Bytes.
	Label  string // Label to resolve.
}

// Line represents a line of assembled code with its source location and
// generated bytes.
type Line struct {
	LineNo  int
	Address uint16
	Words   []string
	Bytes   []uint8
	Links   []Link
}

// ByteWriter writes single bytes of the address space.
type ByteWriter interface {
	SetByte(address uint16, value uint8) error
}

// Program is an assembled program.
type Program struct {
	Lines  []Line
	Labels map[string]uint16
}

type Debug struct {
	*Line
	Index int
}

// Debug locates the source line that generated the byte at address.
func (prog *Program) Debug(address uint16) (dbg Debug) {
	for n, line := range prog.Lines {
		start := int(line.Address)
		if int(address) >= start && int(address) < start+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(address) - start,
			}
			break
		}
	}

	return
}

// Entry is the address execution starts at: the "start" label when
// defined, otherwise the first assembled byte. ok is false for an empty
// program.
func (prog *Program) Entry() (entry uint16, ok bool) {
	entry, ok = prog.Labels["start"]
	if ok {
		return
	}

	for _, line := range prog.Lines {
		if len(line.Bytes) > 0 {
			entry = line.Address
			ok = true
			return
		}
	}

	return
}

// Bytes iterates over every assembled byte with its address.
func (prog *Program) Bytes() iter.Seq2[uint16, uint8] {
	return func(yield func(address uint16, value uint8) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(line.Address+uint16(n), value) {
					return
				}
			}
		}
	}
}

// Size is the total number of assembled bytes.
func (prog *Program) Size() (size int) {
	for _, line := range prog.Lines {
		size += len(line.Bytes)
	}
	return
}

// Load writes the program into memory.
func (prog *Program) Load(mem ByteWriter) (err error) {
	for address, value := range prog.Bytes() {
		err = mem.SetByte(address, value)
		if err != nil {
			return
		}
	}
	return
}
