// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reIdentifier = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
)

// Assembler is a single pass macro assembler for the vm16 instruction set.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of assembled lines.

	predefine map[string]string   // Predefines
	Label     map[string]uint16   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	address   uint16 // Address of the next assembled byte.
	expansion int    // Count of macro expansions, for unique @ labels.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}

	value, err = strconv.ParseInt(word, 0, 33)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if invert {
		value = ^value
	}

	return
}

// value16 returns a word's value as a 16-bit quantity. Negative values
// down to -0x8000 are stored in two's complement.
func (asm *Assembler) value16(word string) (value uint16, err error) {
	v, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v < -0x8000 || v > 0xffff {
		err = ErrValueRange
		return
	}

	value = uint16(v)
	return
}

// value8 returns a word's value as an 8-bit quantity.
func (asm *Assembler) value8(word string) (value uint8, err error) {
	v, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v < -0x80 || v > 0xff {
		err = ErrValueRange
		return
	}

	value = uint8(v)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int64
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	err = nil
	for key, address := range asm.Label {
		if !reIdentifier.MatchString(key) || strings.Contains(key, ".") {
			continue
		}
		pred[key] = starlark.MakeInt(int(address))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single line into words, handling equates, labels
// and macro expansion.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		value := words[2]
		equate, ok := asm.Equate[value]
		if ok {
			value = equate
		}
		asm.Equate[words[1]] = value
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint16, 16)
		}
		asm.Label[label] = asm.address
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expansion++
		unique := fmt.Sprintf("%v_%v_", name, asm.expansion)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", unique)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Lines = asm.Lines[:0]
	asm.address = 0
	asm.expansion = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Lines {
		op := &asm.Lines[n]
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		for _, link := range op.Links {
			address, ok := asm.Label[link.Label]
			if !ok {
				err = ErrLabelMissing(link.Label)
				return
			}
			op.Bytes[link.Offset] = uint8(address >> 8)
			op.Bytes[link.Offset+1] = uint8(address)
		}
	}

	prog = &Program{
		Lines:  slices.Clone(asm.Lines),
		Labels: maps.Clone(asm.Label),
	}
	if prog.Labels == nil {
		prog.Labels = map[string]uint16{}
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []uint8
	var links []Link

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		line := Line{
			LineNo:  lineno,
			Address: asm.address,
			Words:   initial_words,
			Bytes:   codes,
			Links:   links,
		}
		asm.Lines = append(asm.Lines, line)
		asm.address += uint16(len(codes))
	}()

	// word16 emits a 16-bit value, or a link for a label reference.
	word16 := func(word string) (err error) {
		value, err := asm.value16(word)
		if err != nil && reIdentifier.MatchString(word) {
			links = append(links, Link{Offset: len(codes), Label: word})
			value = 0
			err = nil
		}
		if err != nil {
			return
		}
		codes = append(codes, uint8(value>>8), uint8(value))
		return
	}

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var address uint16
		address, err = asm.value16(words[1])
		if err != nil {
			return
		}
		asm.address = address
		return
	case ".word":
		if len(words) < 2 {
			err = ErrDataSyntax
			return
		}
		for _, word := range words[1:] {
			err = word16(word)
			if err != nil {
				return
			}
		}
		return
	case ".byte":
		if len(words) < 2 {
			err = ErrDataSyntax
			return
		}
		for _, word := range words[1:] {
			var value uint8
			value, err = asm.value8(word)
			if err != nil {
				return
			}
			codes = append(codes, value)
		}
		return
	}

	op, ok := ParseOpcode(words[0])
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	operands := op.Operands()
	args := words[1:]
	if len(args) < len(operands) {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > len(operands) {
		err = ErrOpcodeExtraArgs
		return
	}

	codes = append(codes, uint8(op))
	for n, operand := range operands {
		word := args[n]
		switch operand {
		case OPERAND_REG:
			reg, reg_err := ParseRegister(word)
			if reg_err == nil {
				codes = append(codes, uint8(reg))
				continue
			}
			var value uint8
			value, err = asm.value8(word)
			if err != nil {
				err = reg_err
				return
			}
			codes = append(codes, value)
		case OPERAND_LIT8:
			var value uint8
			value, err = asm.value8(word)
			if err != nil {
				return
			}
			codes = append(codes, value)
		case OPERAND_LIT16, OPERAND_ADDR:
			err = word16(word)
			if err != nil {
				return
			}
		}
	}

	return
}
