// Package mapper routes the 16-bit vm16 address space onto devices.
//
// A Mapper owns an ordered list of regions. Each region covers an inclusive
// address range and is bound to exactly one device. Lookup is a linear scan
// in map order and the first region containing the address wins; overlapping
// regions are not rejected.
package mapper

import (
	"iter"
	"log"
	"slices"

	"github.com/ezrec/vm16/device"
)

// Region binds an inclusive address range to a device.
type Region struct {
	Name   string        // Name, used in defines and diagnostics.
	Device device.Device // Backing device.
	Start  uint16        // First address, inclusive.
	End    uint16        // Last address, inclusive.
	Remap  bool          // Subtract Start before indexing the device.
}

// Contains reports whether address lies in the region.
func (rg *Region) Contains(address uint16) bool {
	return address >= rg.Start && address <= rg.End
}

// Size is the number of addresses covered.
func (rg *Region) Size() int {
	return int(rg.End) - int(rg.Start) + 1
}

// Output reports whether the region is backed by an output-only device.
func (rg *Region) Output() bool {
	return device.IsOutput(rg.Device)
}

// offset translates an address in the region to a device offset.
func (rg *Region) offset(address uint16) int {
	if rg.Remap {
		return int(address) - int(rg.Start)
	}
	return int(address)
}

// Mapper is the address space.
type Mapper struct {
	Verbose bool // Set to enable verbose logging.

	regions []*Region
}

// NewMapper creates an empty address space.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map binds device to [start, end]. The device must be large enough to
// back every address of the region after translation.
func (mm *Mapper) Map(name string, dev device.Device, start, end uint16, remap bool) (rg *Region, err error) {
	defer func() {
		if err != nil {
			err = &ErrRegion{Name: name, Err: err}
		}
	}()

	if start > end {
		err = ErrRegionRange
		return
	}

	if slices.ContainsFunc(mm.regions, func(r *Region) bool { return len(name) != 0 && r.Name == name }) {
		err = ErrRegionDuplicate
		return
	}

	rg = &Region{
		Name:   name,
		Device: dev,
		Start:  start,
		End:    end,
		Remap:  remap,
	}

	need := int(end) + 1
	if remap {
		need = rg.Size()
	}
	if dev.Len() < need {
		rg = nil
		err = ErrRegionSize
		return
	}

	if mm.Verbose {
		log.Printf("mapper: map %v 0x%04x-0x%04x remap=%v", name, start, end, remap)
	}

	mm.regions = append(mm.regions, rg)
	return
}

// Unmap removes the named region.
func (mm *Mapper) Unmap(name string) (err error) {
	index := slices.IndexFunc(mm.regions, func(r *Region) bool { return r.Name == name })
	if index < 0 {
		err = &ErrRegion{Name: name, Err: ErrRegionUnknown}
		return
	}

	if mm.Verbose {
		log.Printf("mapper: unmap %v", name)
	}

	mm.regions = slices.Delete(mm.regions, index, index+1)
	return
}

// Regions iterates over the mapped regions in lookup order.
func (mm *Mapper) Regions() iter.Seq[*Region] {
	return slices.Values(mm.regions)
}

// Region returns the named region, or nil.
func (mm *Mapper) Region(name string) *Region {
	for _, rg := range mm.regions {
		if rg.Name == name {
			return rg
		}
	}
	return nil
}

// Find returns the region owning address.
func (mm *Mapper) Find(address uint16) (rg *Region, err error) {
	for _, rg = range mm.regions {
		if rg.Contains(address) {
			return
		}
	}

	rg = nil
	err = ErrAddress(address)
	return
}

// locate resolves address to its region and device offset, checking that
// size bytes starting at the offset exist on the device.
func (mm *Mapper) locate(address uint16, size int) (rg *Region, offset int, err error) {
	rg, err = mm.Find(address)
	if err != nil {
		return
	}

	offset = rg.offset(address)
	if offset+size > rg.Device.Len() {
		missing := int(address) + rg.Device.Len() - offset
		if missing > 0xffff {
			missing = int(address)
		}
		err = ErrAddress(missing)
	}

	return
}

// GetByte reads the byte at address.
func (mm *Mapper) GetByte(address uint16) (value uint8, err error) {
	rg, offset, err := mm.locate(address, 1)
	if err != nil {
		return
	}

	value = rg.Device.GetByte(offset)
	return
}

// SetByte writes the byte at address.
func (mm *Mapper) SetByte(address uint16, value uint8) (err error) {
	rg, offset, err := mm.locate(address, 1)
	if err != nil {
		return
	}

	rg.Device.SetByte(offset, value)
	return
}

// GetWord reads the big-endian word at address and address+1, both through
// the region owning address.
func (mm *Mapper) GetWord(address uint16) (value uint16, err error) {
	rg, offset, err := mm.locate(address, 2)
	if err != nil {
		return
	}

	value = uint16(rg.Device.GetByte(offset))<<8 | uint16(rg.Device.GetByte(offset+1))
	return
}

// SetWord writes value big-endian at address and address+1, both through
// the region owning address.
func (mm *Mapper) SetWord(address uint16, value uint16) (err error) {
	rg, offset, err := mm.locate(address, 2)
	if err != nil {
		return
	}

	if wd, ok := rg.Device.(device.WordDevice); ok {
		wd.SetWord(offset, value)
		return
	}

	rg.Device.SetByte(offset, uint8(value>>8))
	rg.Device.SetByte(offset+1, uint8(value))
	return
}

// Load writes data starting at address, one byte at a time.
func (mm *Mapper) Load(address uint16, data []uint8) (err error) {
	for n, value := range data {
		err = mm.SetByte(uint16(int(address)+n), value)
		if err != nil {
			return
		}
	}
	return
}

// Peek reads the inclusive range [start, end] for inspection. Output-only
// regions read as zero and are never written.
func (mm *Mapper) Peek(start, end uint16) (data []uint8, err error) {
	if start > end {
		err = ErrRegionRange
		return
	}

	data = make([]uint8, 0, int(end)-int(start)+1)
	for address := int(start); address <= int(end); address++ {
		var rg *Region
		var offset int
		rg, offset, err = mm.locate(uint16(address), 1)
		if err != nil {
			return
		}
		var value uint8
		if !rg.Output() {
			value = rg.Device.GetByte(offset)
		}
		data = append(data, value)
	}

	return
}
