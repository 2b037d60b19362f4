package emu

import "fmt"

// flag bits in F
const (
	flagS = 0x80
	flagZ = 0x40
	flagP = 0x04
	flagC = 0x01
)

// step executes one instruction. It returns "" to keep running or a
// break reason ending the current continue.
func (m *Machine) step() string {
	op := m.fetch()
	m.regs.R = (m.regs.R + 1) & 0x7F

	switch op {
	case 0x00: // NOP
		m.tick(4)

	case 0x01, 0x11, 0x21, 0x31: // LD rr,nn
		nn := m.fetchWord()
		switch op {
		case 0x01:
			m.regs.BC = nn
		case 0x11:
			m.regs.DE = nn
		case 0x21:
			m.regs.HL = nn
		case 0x31:
			m.regs.SP = nn
		}
		m.tick(10)

	case 0x06: // LD B,n
		m.setB(m.fetch())
		m.tick(7)
	case 0x0E: // LD C,n
		m.regs.BC = m.regs.BC&0xFF00 | uint16(m.fetch())
		m.tick(7)
	case 0x3E: // LD A,n
		m.setA(m.fetch())
		m.tick(7)

	case 0x04: // INC B
		m.setB(m.b() + 1)
		m.setZ(m.b() == 0)
		m.tick(4)
	case 0x05: // DEC B
		m.setB(m.b() - 1)
		m.setZ(m.b() == 0)
		m.tick(4)
	case 0x3C: // INC A
		m.setA(m.a() + 1)
		m.setZ(m.a() == 0)
		m.tick(4)
	case 0x3D: // DEC A
		m.setA(m.a() - 1)
		m.setZ(m.a() == 0)
		m.tick(4)

	case 0xAF: // XOR A
		m.setA(0)
		m.setZ(true)
		m.setC(false)
		m.tick(4)

	case 0xFE: // CP n
		n := m.fetch()
		m.setZ(m.a() == n)
		m.setC(m.a() < n)
		m.tick(7)

	case 0x32: // LD (nn),A
		m.write(m.fetchWord(), m.a())
		m.tick(13)
	case 0x3A: // LD A,(nn)
		m.setA(m.read(m.fetchWord()))
		m.tick(13)

	case 0x18: // JR d
		d := int8(m.fetch())
		m.regs.PC += uint16(int16(d))
		m.tick(12)
	case 0x20, 0x28, 0x30, 0x38: // JR cc,d
		d := int8(m.fetch())
		if m.cond((op - 0x20) >> 3) {
			m.regs.PC += uint16(int16(d))
			m.tick(12)
		} else {
			m.tick(7)
		}

	case 0x10: // DJNZ d
		d := int8(m.fetch())
		m.setB(m.b() - 1)
		if m.b() != 0 {
			m.regs.PC += uint16(int16(d))
			m.tick(13)
		} else {
			m.tick(8)
		}

	case 0xC3: // JP nn
		m.regs.PC = m.fetchWord()
		m.tick(10)
	case 0xC2, 0xCA, 0xD2, 0xDA, 0xE2, 0xEA, 0xF2, 0xFA: // JP cc,nn
		nn := m.fetchWord()
		if m.cond((op >> 3) & 0x07) {
			m.regs.PC = nn
		}
		m.tick(10)
	case 0xE9: // JP (HL)
		m.regs.PC = m.regs.HL
		m.tick(4)

	case 0xCD: // CALL nn
		nn := m.fetchWord()
		m.push(m.regs.PC)
		m.regs.PC = nn
		m.tick(17)
	case 0xC4, 0xCC, 0xD4, 0xDC, 0xE4, 0xEC, 0xF4, 0xFC: // CALL cc,nn
		nn := m.fetchWord()
		if m.cond((op >> 3) & 0x07) {
			m.push(m.regs.PC)
			m.regs.PC = nn
			m.tick(17)
		} else {
			m.tick(10)
		}

	case 0xC9: // RET
		m.regs.PC = m.pop()
		m.tick(10)
	case 0xC0, 0xC8, 0xD0, 0xD8, 0xE0, 0xE8, 0xF0, 0xF8: // RET cc
		if m.cond((op >> 3) & 0x07) {
			m.regs.PC = m.pop()
			m.tick(11)
		} else {
			m.tick(5)
		}

	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF: // RST p
		m.push(m.regs.PC)
		m.regs.PC = uint16(op & 0x38)
		m.tick(11)

	case 0xC5: // PUSH BC
		m.push(m.regs.BC)
		m.tick(11)
	case 0xD5:
		m.push(m.regs.DE)
		m.tick(11)
	case 0xE5:
		m.push(m.regs.HL)
		m.tick(11)
	case 0xF5:
		m.push(m.regs.AF)
		m.tick(11)

	case 0xC1: // POP BC
		m.regs.BC = m.pop()
		m.tick(10)
	case 0xD1:
		m.regs.DE = m.pop()
		m.tick(10)
	case 0xE1:
		m.regs.HL = m.pop()
		m.tick(10)
	case 0xF1:
		m.regs.AF = m.pop()
		m.tick(10)

	case 0x76: // HALT
		m.halted = true
		m.tick(4)
		return "halted"

	default:
		// rewind so the front end sees the offending address
		m.regs.PC--
		return fmt.Sprintf("unimplemented opcode 0x%02X at 0x%04X", op, m.regs.PC)
	}
	return ""
}

func (m *Machine) fetch() byte {
	b := m.read(m.regs.PC)
	m.regs.PC++
	return b
}

func (m *Machine) fetchWord() uint16 {
	lo := m.fetch()
	hi := m.fetch()
	return uint16(hi)<<8 | uint16(lo)
}

func (m *Machine) push(v uint16) {
	m.regs.SP -= 2
	m.write(m.regs.SP, byte(v))
	m.write(m.regs.SP+1, byte(v>>8))
}

func (m *Machine) pop() uint16 {
	lo := m.read(m.regs.SP)
	hi := m.read(m.regs.SP + 1)
	m.regs.SP += 2
	return uint16(hi)<<8 | uint16(lo)
}

func (m *Machine) tick(tstates uint32) {
	m.tstates += tstates
}

func (m *Machine) a() byte { return byte(m.regs.AF >> 8) }
func (m *Machine) b() byte { return byte(m.regs.BC >> 8) }

func (m *Machine) setA(v byte) { m.regs.AF = uint16(v)<<8 | m.regs.AF&0x00FF }
func (m *Machine) setB(v byte) { m.regs.BC = uint16(v)<<8 | m.regs.BC&0x00FF }

func (m *Machine) setZ(z bool) { m.setFlag(flagZ, z) }
func (m *Machine) setC(c bool) { m.setFlag(flagC, c) }

func (m *Machine) setFlag(bit uint16, on bool) {
	if on {
		m.regs.AF |= bit
	} else {
		m.regs.AF &^= bit
	}
}

// cond evaluates condition code cc (NZ Z NC C PO PE P M).
func (m *Machine) cond(cc byte) bool {
	f := m.regs.AF
	switch cc {
	case 0:
		return f&flagZ == 0
	case 1:
		return f&flagZ != 0
	case 2:
		return f&flagC == 0
	case 3:
		return f&flagC != 0
	case 4:
		return f&flagP == 0
	case 5:
		return f&flagP != 0
	case 6:
		return f&flagS == 0
	default:
		return f&flagS != 0
	}
}
