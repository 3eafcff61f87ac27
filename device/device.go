// Package device provides the addressable devices that back the vm16
// address space: passive storage (Memory) and an output-only character
// terminal (Screen).
package device

// Device is a fixed-size, byte-indexed unit that can be mapped into the
// address space. Offsets are device-relative and always in [0, Len()).
type Device interface {
	// Len is the logical size of the device in bytes.
	Len() int
	// GetByte reads the byte at offset.
	GetByte(offset int) uint8
	// SetByte writes the byte at offset.
	SetByte(offset int, value uint8)
	// Reset returns the device to its power-on state.
	Reset()
}

// WordDevice is implemented by devices that interpret a 16-bit write as a
// single operation rather than as two byte writes.
type WordDevice interface {
	Device
	SetWord(offset int, value uint16)
}

// OutputDevice is implemented by devices whose writes have side effects and
// whose reads carry no information. Inspection tools must not touch them.
type OutputDevice interface {
	Device
	Output() bool
}

// IsOutput reports whether dev is an output-only device.
func IsOutput(dev Device) bool {
	out, ok := dev.(OutputDevice)
	return ok && out.Output()
}
