package device

import (
	"fmt"
	"io"
	"unicode/utf8"
)

const (
	SCREEN_DEFAULT_WIDTH  = 16 // Columns in the default character grid.
	SCREEN_DEFAULT_HEIGHT = 16 // Rows in the default character grid.
)

// Screen word-write commands, carried in the high byte.
const (
	SCREEN_CMD_NONE    = 0x00 // Keep attributes.
	SCREEN_CMD_BOLD    = 0x01 // Select bold.
	SCREEN_CMD_REGULAR = 0x02 // Select regular.
	SCREEN_CMD_CLEAR   = 0xff // Clear the whole screen.
)

// ANSI sequences emitted by the screen.
const (
	ansiClear   = "\x1b[2J"
	ansiBold    = "\x1b[1m"
	ansiRegular = "\x1b[0m"
	ansiMove    = "\x1b[%d;%dH"
)

// Screen is an output-only character grid. Every write positions the
// terminal cursor at the cell addressed by the offset and prints the
// character there; reads return zero.
type Screen struct {
	Width  int       // Columns. Zero selects SCREEN_DEFAULT_WIDTH.
	Height int       // Rows. Zero selects SCREEN_DEFAULT_HEIGHT.
	Writer io.Writer // Terminal receiving escape sequences. Nil discards.

	bold bool
}

var (
	_ WordDevice   = (*Screen)(nil)
	_ OutputDevice = (*Screen)(nil)
)

// NewScreen creates a width x height screen writing to out.
func NewScreen(width, height int, out io.Writer) *Screen {
	if width <= 0 {
		width = SCREEN_DEFAULT_WIDTH
	}
	if height <= 0 {
		height = SCREEN_DEFAULT_HEIGHT
	}
	return &Screen{Width: width, Height: height, Writer: out}
}

func (scr *Screen) width() int {
	if scr.Width <= 0 {
		return SCREEN_DEFAULT_WIDTH
	}
	return scr.Width
}

func (scr *Screen) height() int {
	if scr.Height <= 0 {
		return SCREEN_DEFAULT_HEIGHT
	}
	return scr.Height
}

func (scr *Screen) Len() int {
	return scr.width() * scr.height()
}

// GetByte always reads zero.
func (scr *Screen) GetByte(offset int) uint8 {
	return 0
}

// SetByte prints value at the cell addressed by offset.
func (scr *Screen) SetByte(offset int, value uint8) {
	width := scr.width()
	scr.moveTo(offset%width, offset/width)
	scr.emit(value)
}

// SetWord decodes a command in the high byte and a character in the low
// byte, applies the command, then prints the character.
func (scr *Screen) SetWord(offset int, value uint16) {
	command := uint8(value >> 8)
	switch command {
	case SCREEN_CMD_CLEAR:
		scr.write(ansiClear)
	case SCREEN_CMD_BOLD:
		scr.bold = true
		scr.write(ansiBold)
	case SCREEN_CMD_REGULAR:
		scr.bold = false
		scr.write(ansiRegular)
	}
	scr.SetByte(offset, uint8(value))
}

// Output reports that the screen is write-only.
func (scr *Screen) Output() bool {
	return true
}

// Bold reports whether bold output is currently selected.
func (scr *Screen) Bold() bool {
	return scr.bold
}

// Reset drops back to regular attributes.
func (scr *Screen) Reset() {
	if scr.bold {
		scr.write(ansiRegular)
	}
	scr.bold = false
}

// moveTo positions the cursor; terminal rows and columns are 1-based.
func (scr *Screen) moveTo(x, y int) {
	scr.write(fmt.Sprintf(ansiMove, y+1, x+1))
}

func (scr *Screen) emit(value uint8) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], rune(value))
	scr.write(string(buf[:n]))
}

func (scr *Screen) write(text string) {
	if scr.Writer == nil {
		return
	}
	io.WriteString(scr.Writer, text)
}
