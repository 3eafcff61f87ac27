package device

// Memory is plain read/write storage. All written bytes are kept until
// overwritten or the device is reset.
type Memory struct {
	Data []uint8
}

var _ Device = (*Memory)(nil)

// NewMemory creates a zero-initialised storage device of size bytes.
func NewMemory(size int) *Memory {
	return &Memory{Data: make([]uint8, size)}
}

func (mem *Memory) Len() int {
	return len(mem.Data)
}

func (mem *Memory) GetByte(offset int) uint8 {
	return mem.Data[offset]
}

func (mem *Memory) SetByte(offset int, value uint8) {
	mem.Data[offset] = value
}

// Reset zeroes the storage.
func (mem *Memory) Reset() {
	clear(mem.Data)
}

// Load copies data into the storage starting at offset, returning the number
// of bytes that fit.
func (mem *Memory) Load(offset int, data []uint8) int {
	if offset < 0 || offset >= len(mem.Data) {
		return 0
	}
	return copy(mem.Data[offset:], data)
}
