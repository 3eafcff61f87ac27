package device

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreen_Defaults(t *testing.T) {
	assert := assert.New(t)

	scr := NewScreen(0, 0, nil)
	assert.Equal(SCREEN_DEFAULT_WIDTH, scr.Width)
	assert.Equal(SCREEN_DEFAULT_HEIGHT, scr.Height)
	assert.Equal(256, scr.Len())
	assert.True(IsOutput(scr))

	// Nil output discards.
	scr.SetByte(0, 'A')
	scr.SetWord(0, 0xff41)
}

func TestScreen_ZeroValue(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	scr := &Screen{Writer: out}
	assert.Equal(SCREEN_DEFAULT_WIDTH*SCREEN_DEFAULT_HEIGHT, scr.Len())

	scr.SetByte(0x12, 'Z')
	assert.Equal("\x1b[2;3HZ", out.String())

	out.Reset()
	scr.SetWord(0x00, 0x0141)
	assert.Equal("\x1b[1m\x1b[1;1HA", out.String())
}

func TestScreen_SetByte(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	scr := NewScreen(16, 16, out)

	scr.SetByte(0, 'H')
	assert.Equal("\x1b[1;1HH", out.String())

	out.Reset()
	scr.SetByte(0x21, 'i')
	assert.Equal("\x1b[3;2Hi", out.String())

	// Reads never reflect writes.
	assert.Equal(uint8(0), scr.GetByte(0))
	assert.Equal(uint8(0), scr.GetByte(0x21))
}

func TestScreen_SetWord(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name     string
		value    uint16
		expected string
		bold     bool
	}{
		{"plain", 0x0041, "\x1b[1;6HA", false},
		{"clear", 0xff42, "\x1b[2J\x1b[1;6HB", false},
		{"bold", 0x0143, "\x1b[1m\x1b[1;6HC", true},
		{"regular", 0x0244, "\x1b[0m\x1b[1;6HD", false},
		{"unknown", 0x7745, "\x1b[1;6HE", false},
	}

	for _, entry := range table {
		out := &bytes.Buffer{}
		scr := NewScreen(16, 16, out)
		scr.SetWord(5, entry.value)
		assert.Equal(entry.expected, out.String(), entry.name)
		assert.Equal(entry.bold, scr.Bold(), entry.name)
	}
}

func TestScreen_Reset(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	scr := NewScreen(16, 16, out)

	scr.Reset()
	assert.Equal("", out.String())

	scr.SetWord(0, 0x0120)
	out.Reset()
	scr.Reset()
	assert.False(scr.Bold())
	assert.Equal("\x1b[0m", out.String())
}

func TestScreen_HighCharacter(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	scr := NewScreen(16, 16, out)

	scr.SetByte(0, 0xe9)
	assert.Equal("\x1b[1;1Hé", out.String())
}
