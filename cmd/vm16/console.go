package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/vm16/machine"
)

// Console keys.
const (
	KEY_QUIT     = 'q'  // Stop without running further.
	KEY_CONTINUE = 'c'  // Run to completion without stopping.
	KEY_CTRL_C   = 0x03 // Interrupt, as seen in raw mode.
)

// console single-steps a machine, showing its state before every
// instruction and waiting for a key.
type console struct {
	*machine.Machine

	In  io.Reader
	Out io.Writer

	View       bool   // Show memory from Start to End.
	Start, End uint16 // Inclusive memory range to show.

	fd    int
	state *term.State
}

// open switches the input to raw mode when it is a terminal.
func (con *console) open() (err error) {
	inf, ok := con.In.(*os.File)
	if !ok {
		return
	}

	fd := int(inf.Fd())
	if !term.IsTerminal(fd) {
		return
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}

	con.fd = fd
	con.state = state
	return
}

// close restores the terminal mode.
func (con *console) close() {
	if con.state != nil {
		_ = term.Restore(con.fd, con.state)
		con.state = nil
	}
}

// printf writes to the console, translating newlines in raw mode.
func (con *console) printf(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if con.state != nil {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	io.WriteString(con.Out, text)
}

// key waits for a single key press.
func (con *console) key() (key byte, err error) {
	var buf [1]byte
	_, err = io.ReadFull(con.In, buf[:])
	key = buf[0]
	return
}

// show prints the registers, the next instruction and the memory view.
func (con *console) show() {
	con.printf("\n%v", con.Cpu.String())

	ip := con.Ip()
	text, _, err := con.Cpu.Disassemble(ip)
	if err != nil {
		text = err.Error()
	}
	con.printf("0x%04X: %v (line %d)\n", ip, text, con.LineNo())

	if con.View {
		dump, err := con.Dump(con.Start, con.End)
		if err != nil {
			dump = err.Error() + "\n"
		}
		con.printf("%v", dump)
	}
}

// Run steps the machine until it halts, faults, or the user quits.
func (con *console) Run() (err error) {
	err = con.open()
	if err != nil {
		return
	}
	defer con.close()

	for {
		con.show()

		var key byte
		key, err = con.key()
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			return
		}

		switch key {
		case KEY_QUIT, KEY_CTRL_C:
			return
		case KEY_CONTINUE:
			err = con.Machine.Run()
			return
		}

		var done bool
		done, err = con.Tick()
		if err != nil {
			return
		}
		if done {
			con.show()
			con.printf("halted after %v ticks\n", con.Ticks())
			return
		}
	}
}
