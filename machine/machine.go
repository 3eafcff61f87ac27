// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"fmt"
	"io"
	"iter"
	"log"
	"strings"

	"github.com/pkg/errors"

	"github.com/ezrec/vm16/cpu"
	"github.com/ezrec/vm16/device"
	"github.com/ezrec/vm16/internal"
	"github.com/ezrec/vm16/mapper"
)

// Machine state. CPU + address space + devices.
type Machine struct {
	Verbose  bool           // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Mapper   *mapper.Mapper // Address space shared by all devices.
	Program  *cpu.Program   // Reference to the currently loaded program listing.
	Layout   *Layout        // Layout the machine was built from.
}

// NewMachine builds the devices and address space described by layout,
// sending screen output to out. A nil layout selects DefaultLayout.
func NewMachine(layout *Layout, out io.Writer) (mach *Machine, err error) {
	if layout == nil {
		layout = DefaultLayout()
	}

	err = layout.Validate()
	if err != nil {
		return
	}

	mm := mapper.NewMapper()
	var stackTop uint16
	for _, rg := range layout.Region {
		var dev device.Device
		switch rg.Device {
		case DEVICE_SCREEN:
			dev = device.NewScreen(rg.screenWidth(), rg.screenHeight(), out)
		default:
			dev = device.NewMemory(rg.DeviceSize())
		}

		_, err = mm.Map(rg.Name, dev, rg.Start, rg.End, rg.Remap)
		if err != nil {
			err = errors.Wrapf(err, "map 0x%04x-0x%04x", rg.Start, rg.End)
			return
		}

		if rg.Name == layout.Stack {
			if rg.End == rg.Start {
				err = errors.Wrapf(ErrLayoutStack, "%s", rg.Name)
				return
			}
			stackTop = rg.End - 1
		}
	}

	mach = &Machine{
		Mapper:  mm,
		Program: &cpu.Program{},
		Layout:  layout,
	}

	if len(layout.Stack) != 0 {
		mach.Cpu = cpu.NewCpu(mm, stackTop)
	} else {
		mach.Cpu = cpu.NewCpuBasic(mm)
	}

	return
}

// Defines returns an iterator over all of the defines: the bounds of every
// region, screen geometry, and the CPU defines.
func (mach *Machine) Defines() iter.Seq2[string, string] {
	defines := map[string]string{}
	for _, rg := range mach.Layout.Region {
		name := strings.ToUpper(rg.Name)
		defines[name+"_START"] = fmt.Sprintf("%#04x", rg.Start)
		defines[name+"_END"] = fmt.Sprintf("%#04x", rg.End)
		if rg.Device == DEVICE_SCREEN {
			defines[name+"_WIDTH"] = fmt.Sprintf("%v", rg.screenWidth())
			defines[name+"_HEIGHT"] = fmt.Sprintf("%v", rg.screenHeight())
		}
	}

	return internal.Defines(internal.SortedDefines(defines), mach.Cpu.Defines())
}

// Assemble parses a program with the machine defines, and makes it the
// program installed by Reset.
func (mach *Machine) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: mach.Verbose}
	for name, value := range mach.Defines() {
		asm.Predefine(name, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	mach.Program = prog
	return
}

// Reset the devices, load the program, and point the CPU at the entry.
func (mach *Machine) Reset() (err error) {
	if mach.Verbose {
		log.Printf("machine: reset")
	}

	for rg := range mach.Mapper.Regions() {
		rg.Device.Reset()
	}

	err = mach.Program.Load(mach.Mapper)
	if err != nil {
		return
	}

	var entry uint16
	if mach.Layout.Entry != nil {
		entry = *mach.Layout.Entry
	} else {
		entry, _ = mach.Program.Entry()
	}

	mach.Cpu.Verbose = mach.Verbose
	mach.Cpu.Reset(entry)

	return
}

// Ticks returns the total ticks since a reset.
func (mach *Machine) Ticks() int {
	return mach.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (mach *Machine) Ip() uint16 {
	return mach.Cpu.Get(cpu.REG_IP)
}

// LineNo returns the source line number of the instruction at ip, or 0.
func (mach *Machine) LineNo() int {
	dbg := mach.Program.Debug(mach.Ip())
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction.
func (mach *Machine) Tick() (done bool, err error) {
	// Set CPU verbosity
	mach.Cpu.Verbose = mach.Verbose

	lineno := mach.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	done, err = mach.Cpu.Step()
	return
}

// Run ticks until halt or error.
func (mach *Machine) Run() (err error) {
	for {
		var done bool
		done, err = mach.Tick()
		if done || err != nil {
			return
		}
	}
}

// Dump renders the inclusive address range as hex, sixteen bytes per
// line. Output-only regions show as zero.
func (mach *Machine) Dump(start, end uint16) (text string, err error) {
	data, err := mach.Mapper.Peek(start, end)
	if err != nil {
		return
	}

	var sb strings.Builder
	for n, value := range data {
		if n%16 == 0 {
			if n != 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "0x%04X:", int(start)+n)
		}
		fmt.Fprintf(&sb, " 0x%02X", value)
	}
	sb.WriteString("\n")

	text = sb.String()
	return
}
