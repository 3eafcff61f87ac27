package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Opcode is the one-byte instruction selector.
type Opcode uint8

const (
	MOV_LIT_REG     = Opcode(0x10) // mov_lit_reg
	MOV_REG_REG     = Opcode(0x11) // mov_reg_reg
	MOV_REG_MEM     = Opcode(0x12) // mov_reg_mem
	MOV_MEM_REG     = Opcode(0x13) // mov_mem_reg
	ADD_REG_REG     = Opcode(0x14) // add_reg_reg
	JMP_NOT_EQ      = Opcode(0x15) // jmp_not_eq
	PSH_LIT         = Opcode(0x16) // psh_lit
	PSH_REG         = Opcode(0x17) // psh_reg
	POP             = Opcode(0x18) // pop
	CAL_LIT         = Opcode(0x19) // cal_lit
	CAL_REG         = Opcode(0x1a) // cal_reg
	RET             = Opcode(0x1b) // ret
	HLT             = Opcode(0x1c) // hlt
	MOV_LIT_MEM     = Opcode(0x1d) // mov_lit_mem
	MOV_REG_PTR_REG = Opcode(0x1e) // mov_reg_ptr_reg
	MOV_LIT_OFF_REG = Opcode(0x1f) // mov_lit_off_reg
	ADD_LIT_REG     = Opcode(0x20) // add_lit_reg
	ADD_REG_LIT     = Opcode(0x21) // add_reg_lit
	SUB_LIT_REG     = Opcode(0x22) // sub_lit_reg
	SUB_REG_LIT     = Opcode(0x23) // sub_reg_lit
	SUB_REG_REG     = Opcode(0x24) // sub_reg_reg
	MUL_LIT_REG     = Opcode(0x25) // mul_lit_reg
	MUL_REG_LIT     = Opcode(0x26) // mul_reg_lit
	MUL_REG_REG     = Opcode(0x27) // mul_reg_reg
	INC_REG         = Opcode(0x28) // inc_reg
	DEC_REG         = Opcode(0x29) // dec_reg
	LSF_REG_LIT     = Opcode(0x2a) // lsf_reg_lit
	LSF_REG_REG     = Opcode(0x2b) // lsf_reg_reg
	RSF_REG_LIT     = Opcode(0x2c) // rsf_reg_lit
	RSF_REG_REG     = Opcode(0x2d) // rsf_reg_reg
	AND_REG_LIT     = Opcode(0x2e) // and_reg_lit
	AND_REG_REG     = Opcode(0x2f) // and_reg_reg
	OR_REG_LIT      = Opcode(0x30) // or_reg_lit
	OR_REG_REG      = Opcode(0x31) // or_reg_reg
	XOR_REG_LIT     = Opcode(0x32) // xor_reg_lit
	XOR_REG_REG     = Opcode(0x33) // xor_reg_reg
	NOT             = Opcode(0x34) // not
	JNE_REG         = Opcode(0x35) // jne_reg
	JEQ_LIT         = Opcode(0x36) // jeq_lit
	JEQ_REG         = Opcode(0x37) // jeq_reg
	JLT_LIT         = Opcode(0x38) // jlt_lit
	JLT_REG         = Opcode(0x39) // jlt_reg
	JGT_LIT         = Opcode(0x3a) // jgt_lit
	JGT_REG         = Opcode(0x3b) // jgt_reg
	JLE_LIT         = Opcode(0x3c) // jle_lit
	JLE_REG         = Opcode(0x3d) // jle_reg
	JGE_LIT         = Opcode(0x3e) // jge_lit
	JGE_REG         = Opcode(0x3f) // jge_reg
)

//go:generate go tool stringer -linecomment -type=Operand

// Operand is the kind of an instruction operand.
type Operand int

// Register selectors are one byte. Literals and addresses are two bytes,
// big-endian, except lit8.
const (
	OPERAND_REG   = Operand(0) // reg
	OPERAND_LIT8  = Operand(1) // lit8
	OPERAND_LIT16 = Operand(2) // lit16
	OPERAND_ADDR  = Operand(3) // addr
)

// Size is the encoded width of the operand in bytes.
func (op Operand) Size() int {
	switch op {
	case OPERAND_LIT16, OPERAND_ADDR:
		return 2
	default:
		return 1
	}
}

type opcodeInfo struct {
	name     string
	operands []Operand
}

var (
	argsNone     = []Operand{}
	argsReg      = []Operand{OPERAND_REG}
	argsAddr     = []Operand{OPERAND_ADDR}
	argsLit      = []Operand{OPERAND_LIT16}
	argsRegReg   = []Operand{OPERAND_REG, OPERAND_REG}
	argsRegLit   = []Operand{OPERAND_REG, OPERAND_LIT16}
	argsRegLit8  = []Operand{OPERAND_REG, OPERAND_LIT8}
	argsLitReg   = []Operand{OPERAND_LIT16, OPERAND_REG}
	argsLitAddr  = []Operand{OPERAND_LIT16, OPERAND_ADDR}
	argsRegAddr  = []Operand{OPERAND_REG, OPERAND_ADDR}
	argsAddrReg  = []Operand{OPERAND_ADDR, OPERAND_REG}
	argsAddrRegs = []Operand{OPERAND_ADDR, OPERAND_REG, OPERAND_REG}
)

// opcodeTable is the instruction set, indexed by opcode byte. A nil entry
// is an invalid opcode.
var opcodeTable = [256]*opcodeInfo{
	MOV_LIT_REG:     {"mov_lit_reg", argsLitReg},
	MOV_REG_REG:     {"mov_reg_reg", argsRegReg},
	MOV_REG_MEM:     {"mov_reg_mem", argsRegAddr},
	MOV_MEM_REG:     {"mov_mem_reg", argsAddrReg},
	ADD_REG_REG:     {"add_reg_reg", argsRegReg},
	JMP_NOT_EQ:      {"jmp_not_eq", argsLitAddr},
	PSH_LIT:         {"psh_lit", argsLit},
	PSH_REG:         {"psh_reg", argsReg},
	POP:             {"pop", argsReg},
	CAL_LIT:         {"cal_lit", argsAddr},
	CAL_REG:         {"cal_reg", argsReg},
	RET:             {"ret", argsNone},
	HLT:             {"hlt", argsNone},
	MOV_LIT_MEM:     {"mov_lit_mem", argsLitAddr},
	MOV_REG_PTR_REG: {"mov_reg_ptr_reg", argsRegReg},
	MOV_LIT_OFF_REG: {"mov_lit_off_reg", argsAddrRegs},
	ADD_LIT_REG:     {"add_lit_reg", argsLitReg},
	ADD_REG_LIT:     {"add_reg_lit", argsRegLit},
	SUB_LIT_REG:     {"sub_lit_reg", argsLitReg},
	SUB_REG_LIT:     {"sub_reg_lit", argsRegLit},
	SUB_REG_REG:     {"sub_reg_reg", argsRegReg},
	MUL_LIT_REG:     {"mul_lit_reg", argsLitReg},
	MUL_REG_LIT:     {"mul_reg_lit", argsRegLit},
	MUL_REG_REG:     {"mul_reg_reg", argsRegReg},
	INC_REG:         {"inc_reg", argsReg},
	DEC_REG:         {"dec_reg", argsReg},
	LSF_REG_LIT:     {"lsf_reg_lit", argsRegLit8},
	LSF_REG_REG:     {"lsf_reg_reg", argsRegReg},
	RSF_REG_LIT:     {"rsf_reg_lit", argsRegLit8},
	RSF_REG_REG:     {"rsf_reg_reg", argsRegReg},
	AND_REG_LIT:     {"and_reg_lit", argsRegLit},
	AND_REG_REG:     {"and_reg_reg", argsRegReg},
	OR_REG_LIT:      {"or_reg_lit", argsRegLit},
	OR_REG_REG:      {"or_reg_reg", argsRegReg},
	XOR_REG_LIT:     {"xor_reg_lit", argsRegLit},
	XOR_REG_REG:     {"xor_reg_reg", argsRegReg},
	NOT:             {"not", argsReg},
	JNE_REG:         {"jne_reg", argsRegAddr},
	JEQ_LIT:         {"jeq_lit", argsLitAddr},
	JEQ_REG:         {"jeq_reg", argsRegAddr},
	JLT_LIT:         {"jlt_lit", argsLitAddr},
	JLT_REG:         {"jlt_reg", argsRegAddr},
	JGT_LIT:         {"jgt_lit", argsLitAddr},
	JGT_REG:         {"jgt_reg", argsRegAddr},
	JLE_LIT:         {"jle_lit", argsLitAddr},
	JLE_REG:         {"jle_reg", argsRegAddr},
	JGE_LIT:         {"jge_lit", argsLitAddr},
	JGE_REG:         {"jge_reg", argsRegAddr},
}

// Valid reports whether the opcode names an instruction.
func (op Opcode) Valid() bool {
	return opcodeTable[op] != nil
}

// String returns the upper-case mnemonic.
func (op Opcode) String() string {
	info := opcodeTable[op]
	if info == nil {
		return fmt.Sprintf("OP_%02X", uint8(op))
	}
	return strings.ToUpper(info.name)
}

// Mnemonic returns the assembler mnemonic, or "" for an invalid opcode.
func (op Opcode) Mnemonic() string {
	info := opcodeTable[op]
	if info == nil {
		return ""
	}
	return info.name
}

// Operands returns the operand layout following the opcode byte.
func (op Opcode) Operands() []Operand {
	info := opcodeTable[op]
	if info == nil {
		return nil
	}
	return info.operands
}

// Size is the encoded instruction width, opcode byte included.
func (op Opcode) Size() (size int) {
	size = 1
	for _, operand := range op.Operands() {
		size += operand.Size()
	}
	return
}

// Opcodes iterates over the valid opcodes in ascending order.
func Opcodes() iter.Seq[Opcode] {
	return func(yield func(op Opcode) bool) {
		for n, info := range opcodeTable {
			if info == nil {
				continue
			}
			if !yield(Opcode(n)) {
				return
			}
		}
	}
}

// ParseOpcode looks up an opcode by mnemonic, in either case.
func ParseOpcode(mnemonic string) (op Opcode, ok bool) {
	lower := strings.ToLower(mnemonic)
	for op = range Opcodes() {
		if opcodeTable[op].name == lower {
			ok = true
			return
		}
	}

	op = 0
	return
}
