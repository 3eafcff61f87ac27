package machine

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/ezrec/vm16/device"
)

const (
	DEVICE_MEMORY = "memory" // Read/write storage.
	DEVICE_SCREEN = "screen" // Output-only character grid.
)

// Region describes one mapped device.
type Region struct {
	Name   string `toml:"name"`
	Device string `toml:"device"`
	Start  uint16 `toml:"start"`
	End    uint16 `toml:"end"`
	Size   int    `toml:"size"`   // Device size; zero sizes the device to fit.
	Remap  bool   `toml:"remap"`  // Index the device relative to Start.
	Width  int    `toml:"width"`  // Screen columns.
	Height int    `toml:"height"` // Screen rows.
}

// Layout describes the address space of a machine.
type Layout struct {
	Entry  *uint16  `toml:"entry"`  // Reset address; nil uses the program entry.
	Stack  string   `toml:"stack"`  // Region holding the stack; empty for no stack.
	Region []Region `toml:"region"` // Regions, in lookup order.
}

// DefaultLayout is 12K of RAM, a 16x16 screen, and the rest of the address
// space as stack RAM.
func DefaultLayout() *Layout {
	return &Layout{
		Stack: "stack",
		Region: []Region{
			{Name: "ram", Device: DEVICE_MEMORY, Start: 0x0000, End: 0x2fff, Remap: true},
			{Name: "screen", Device: DEVICE_SCREEN, Start: 0x3000, End: 0x30ff, Remap: true,
				Width: device.SCREEN_DEFAULT_WIDTH, Height: device.SCREEN_DEFAULT_HEIGHT},
			{Name: "stack", Device: DEVICE_MEMORY, Start: 0x3100, End: 0xffff, Remap: true},
		},
	}
}

// ParseLayout decodes a TOML layout.
func ParseLayout(text string) (layout *Layout, err error) {
	layout = &Layout{}
	_, err = toml.Decode(text, layout)
	if err != nil {
		layout = nil
		err = errors.Wrapf(err, "layout")
		return
	}

	err = layout.Validate()
	if err != nil {
		layout = nil
	}
	return
}

// LoadLayout reads a TOML layout file.
func LoadLayout(path string) (layout *Layout, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	layout, err = ParseLayout(string(data))
	if err != nil {
		err = errors.Wrapf(err, "%s", path)
	}
	return
}

// Validate checks the layout for names and devices the machine cannot build.
// Address range checks are left to the mapper.
func (layout *Layout) Validate() (err error) {
	stack := false
	for _, rg := range layout.Region {
		if len(rg.Name) == 0 {
			err = ErrLayoutRegion
			return
		}
		switch rg.Device {
		case DEVICE_MEMORY:
			stack = stack || rg.Name == layout.Stack
		case DEVICE_SCREEN:
		default:
			err = errors.Wrapf(ErrLayoutDevice, "region %s device %q", rg.Name, rg.Device)
			return
		}
	}

	if len(layout.Stack) != 0 && !stack {
		err = errors.Wrapf(ErrLayoutStack, "%s", layout.Stack)
		return
	}

	return
}

// DeviceSize is the size of the device backing the region.
func (rg *Region) DeviceSize() int {
	switch {
	case rg.Device == DEVICE_SCREEN:
		return rg.screenWidth() * rg.screenHeight()
	case rg.Size > 0:
		return rg.Size
	case rg.Remap:
		return int(rg.End) - int(rg.Start) + 1
	default:
		return int(rg.End) + 1
	}
}

func (rg *Region) screenWidth() int {
	if rg.Width <= 0 {
		return device.SCREEN_DEFAULT_WIDTH
	}
	return rg.Width
}

func (rg *Region) screenHeight() int {
	if rg.Height <= 0 {
		return device.SCREEN_DEFAULT_HEIGHT
	}
	return rg.Height
}
