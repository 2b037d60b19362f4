// Package z80 decodes Z80 machine code just far enough for a debugger:
// instruction length, a printable mnemonic, and the control-flow class
// needed to place step breakpoints.
package z80

import (
	"fmt"
	"strings"
)

// MaxInstructionLen is the longest encoding a Z80 instruction can have
// (prefix + opcode + displacement + immediate).
const MaxInstructionLen = 4

// Kind classifies an instruction for the stepping logic.
type Kind int

const (
	KindOther Kind = iota
	KindCall
	KindRst
	KindRet
	KindJump         // absolute or relative jump with a known target
	KindJumpIndirect // JP (HL) / JP (IX) / JP (IY)
	KindHalt
)

// Instruction is one decoded instruction.
type Instruction struct {
	Mnemonic    string
	Length      int
	Kind        Kind
	Conditional bool
	Target      uint16 // branch target, valid for KindCall, KindRst and KindJump
	Indirect    string // "HL", "IX" or "IY" for KindJumpIndirect
}

// IsRet reports whether the instruction is any flavor of return,
// the classifier step-out relies on.
func (i Instruction) IsRet() bool {
	return strings.HasPrefix(strings.ToUpper(i.Mnemonic), "RET")
}

// Decode decodes the instruction starting at buf[0], assumed to live at
// address pc. buf shorter than the encoding is padded with zero bytes.
func Decode(buf []byte, pc uint16) Instruction {
	var b [MaxInstructionLen]byte
	copy(b[:], buf)

	op := b[0]
	switch op {
	case 0xCB:
		return decodeCB(b[1])
	case 0xED:
		return decodeED(b)
	case 0xDD:
		return decodeIndexed(b, pc, "IX")
	case 0xFD:
		return decodeIndexed(b, pc, "IY")
	}
	return decodeBase(b, pc)
}

func decodeBase(b [MaxInstructionLen]byte, pc uint16) Instruction {
	op := b[0]
	inst := Instruction{
		Length: lengths[op],
		Kind:   classify(op),
	}

	n := b[1]
	nn := uint16(b[2])<<8 | uint16(b[1])

	switch inst.Kind {
	case KindCall, KindJump:
		if inst.Length == 3 {
			inst.Target = nn
		} else {
			// relative: JR/DJNZ, displacement from the following instruction
			inst.Target = pc + uint16(inst.Length) + uint16(int16(int8(n)))
		}
		inst.Conditional = conditional(op)
	case KindRst:
		inst.Target = uint16(op & 0x38)
	case KindRet:
		inst.Conditional = op != 0xC9
	case KindJumpIndirect:
		inst.Indirect = "HL"
	}

	inst.Mnemonic = expand(mnemonics[op], n, nn, inst.Target)
	return inst
}

func decodeCB(op byte) Instruction {
	var m string
	reg := regNames8[op&0x07]
	bitNo := (op >> 3) & 0x07
	switch op >> 6 {
	case 0:
		m = cbOps[bitNo] + " " + reg
	case 1:
		m = fmt.Sprintf("BIT %d,%s", bitNo, reg)
	case 2:
		m = fmt.Sprintf("RES %d,%s", bitNo, reg)
	case 3:
		m = fmt.Sprintf("SET %d,%s", bitNo, reg)
	}
	return Instruction{Mnemonic: m, Length: 2}
}

func decodeED(b [MaxInstructionLen]byte) Instruction {
	op := b[1]
	tmpl, ok := edMnemonics[op]
	if !ok {
		return Instruction{
			Mnemonic: fmt.Sprintf("DB 0xED,0x%02X", op),
			Length:   2,
		}
	}

	inst := Instruction{Length: 2}
	if strings.Contains(tmpl, "%nn") {
		inst.Length = 4
	}
	switch op {
	case 0x4D, 0x45, 0x55, 0x5D, 0x65, 0x6D, 0x75, 0x7D:
		// RETI and RETN (with its undocumented clones)
		inst.Kind = KindRet
	}
	nn := uint16(b[3])<<8 | uint16(b[2])
	inst.Mnemonic = expand(tmpl, 0, nn, 0)
	return inst
}

func decodeIndexed(b [MaxInstructionLen]byte, pc uint16, idx string) Instruction {
	op := b[1]

	switch op {
	case 0xE9:
		return Instruction{
			Mnemonic: "JP (" + idx + ")",
			Length:   2,
			Kind:     KindJumpIndirect,
			Indirect: idx,
		}
	case 0xCB:
		// DD CB d op: bit operation on (IX+d)
		inner := decodeCB(b[3])
		m := strings.Replace(inner.Mnemonic, "(HL)", idxOperand(idx, int8(b[2])), 1)
		return Instruction{Mnemonic: m, Length: 4}
	case 0xDD, 0xFD, 0xED:
		// stacked prefix: the leading one is a no-op
		return Instruction{Mnemonic: "NOP*", Length: 1}
	}

	length := 1 + lengths[op]
	if indexedDisplacement(op) {
		length++
	}

	n := b[2]
	nn := uint16(b[3])<<8 | uint16(b[2])
	if op == 0x36 { // LD (IX+d),n
		n = b[3]
	}

	m := mnemonics[op]
	if indexedDisplacement(op) {
		m = strings.Replace(m, "(HL)", idxOperand(idx, int8(b[2])), 1)
	} else {
		m = strings.Replace(m, "HL", idx, 1)
	}
	return Instruction{
		Mnemonic: expand(m, n, nn, 0),
		Length:   length,
	}
}

// idxOperand formats an indexed operand, keeping the sign readable.
func idxOperand(idx string, d int8) string {
	if d < 0 {
		return fmt.Sprintf("(%s-%d)", idx, -int(d))
	}
	return fmt.Sprintf("(%s+%d)", idx, d)
}

func classify(op byte) Kind {
	switch op {
	case 0xCD, 0xC4, 0xCC, 0xD4, 0xDC, 0xE4, 0xEC, 0xF4, 0xFC:
		return KindCall
	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF:
		return KindRst
	case 0xC9, 0xC0, 0xC8, 0xD0, 0xD8, 0xE0, 0xE8, 0xF0, 0xF8:
		return KindRet
	case 0xC3, 0xC2, 0xCA, 0xD2, 0xDA, 0xE2, 0xEA, 0xF2, 0xFA,
		0x18, 0x20, 0x28, 0x30, 0x38, 0x10:
		return KindJump
	case 0xE9:
		return KindJumpIndirect
	case 0x76:
		return KindHalt
	}
	return KindOther
}

func conditional(op byte) bool {
	switch op {
	case 0xCD, 0xC3, 0x18: // CALL nn, JP nn, JR d
		return false
	}
	return true
}

func expand(tmpl string, n byte, nn, target uint16) string {
	switch {
	case strings.Contains(tmpl, "%nn"):
		return strings.Replace(tmpl, "%nn", fmt.Sprintf("0x%04X", nn), 1)
	case strings.Contains(tmpl, "%n"):
		return strings.Replace(tmpl, "%n", fmt.Sprintf("0x%02X", n), 1)
	case strings.Contains(tmpl, "%e"):
		return strings.Replace(tmpl, "%e", fmt.Sprintf("0x%04X", target), 1)
	}
	return tmpl
}
