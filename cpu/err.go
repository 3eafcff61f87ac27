package cpu

import (
	"errors"

	"github.com/ezrec/vm16/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrOpcodeUnknown   = errors.New(f("opcode unknown"))
	ErrRegisterUnknown = errors.New(f("register unknown"))
	ErrStackMissing    = errors.New(f("stack not configured"))
	ErrStackUnderflow  = errors.New(f("stack underflow"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrDataSyntax         = errors.New(f("data directive syntax"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrValueRange         = errors.New(f("value out of range"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrOpcode reports an opcode byte with no instruction.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x", uint8(eo))
}

func (eo ErrOpcode) Is(err error) bool {
	return err == ErrOpcodeUnknown
}

// ErrRegister reports a register name that does not exist.
type ErrRegister string

func (er ErrRegister) Error() string {
	return f("register %v unknown", string(er))
}

func (er ErrRegister) Is(err error) bool {
	return err == ErrRegisterUnknown
}

// ErrFault is a fault raised while executing the instruction at Ip.
type ErrFault struct {
	Ip     uint16
	Opcode Opcode
	Err    error
}

func (err *ErrFault) Error() string {
	return f("0x%04x %v: %v", err.Ip, err.Opcode, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
