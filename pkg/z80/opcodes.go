package z80

// mnemonics holds the template for every unprefixed opcode. Immediate
// operands are substituted by Decode: %nn is a 16-bit word, %n an 8-bit
// byte, %e the resolved target of a relative jump.
var mnemonics = [256]string{
	0x00: "NOP",
	0x01: "LD BC,%nn",
	0x02: "LD (BC),A",
	0x03: "INC BC",
	0x04: "INC B",
	0x05: "DEC B",
	0x06: "LD B,%n",
	0x07: "RLCA",
	0x08: "EX AF,AF'",
	0x09: "ADD HL,BC",
	0x0A: "LD A,(BC)",
	0x0B: "DEC BC",
	0x0C: "INC C",
	0x0D: "DEC C",
	0x0E: "LD C,%n",
	0x0F: "RRCA",
	0x10: "DJNZ %e",
	0x11: "LD DE,%nn",
	0x12: "LD (DE),A",
	0x13: "INC DE",
	0x14: "INC D",
	0x15: "DEC D",
	0x16: "LD D,%n",
	0x17: "RLA",
	0x18: "JR %e",
	0x19: "ADD HL,DE",
	0x1A: "LD A,(DE)",
	0x1B: "DEC DE",
	0x1C: "INC E",
	0x1D: "DEC E",
	0x1E: "LD E,%n",
	0x1F: "RRA",
	0x20: "JR NZ,%e",
	0x21: "LD HL,%nn",
	0x22: "LD (%nn),HL",
	0x23: "INC HL",
	0x24: "INC H",
	0x25: "DEC H",
	0x26: "LD H,%n",
	0x27: "DAA",
	0x28: "JR Z,%e",
	0x29: "ADD HL,HL",
	0x2A: "LD HL,(%nn)",
	0x2B: "DEC HL",
	0x2C: "INC L",
	0x2D: "DEC L",
	0x2E: "LD L,%n",
	0x2F: "CPL",
	0x30: "JR NC,%e",
	0x31: "LD SP,%nn",
	0x32: "LD (%nn),A",
	0x33: "INC SP",
	0x34: "INC (HL)",
	0x35: "DEC (HL)",
	0x36: "LD (HL),%n",
	0x37: "SCF",
	0x38: "JR C,%e",
	0x39: "ADD HL,SP",
	0x3A: "LD A,(%nn)",
	0x3B: "DEC SP",
	0x3C: "INC A",
	0x3D: "DEC A",
	0x3E: "LD A,%n",
	0x3F: "CCF",
	0x40: "LD B,B",
	0x41: "LD B,C",
	0x42: "LD B,D",
	0x43: "LD B,E",
	0x44: "LD B,H",
	0x45: "LD B,L",
	0x46: "LD B,(HL)",
	0x47: "LD B,A",
	0x48: "LD C,B",
	0x49: "LD C,C",
	0x4A: "LD C,D",
	0x4B: "LD C,E",
	0x4C: "LD C,H",
	0x4D: "LD C,L",
	0x4E: "LD C,(HL)",
	0x4F: "LD C,A",
	0x50: "LD D,B",
	0x51: "LD D,C",
	0x52: "LD D,D",
	0x53: "LD D,E",
	0x54: "LD D,H",
	0x55: "LD D,L",
	0x56: "LD D,(HL)",
	0x57: "LD D,A",
	0x58: "LD E,B",
	0x59: "LD E,C",
	0x5A: "LD E,D",
	0x5B: "LD E,E",
	0x5C: "LD E,H",
	0x5D: "LD E,L",
	0x5E: "LD E,(HL)",
	0x5F: "LD E,A",
	0x60: "LD H,B",
	0x61: "LD H,C",
	0x62: "LD H,D",
	0x63: "LD H,E",
	0x64: "LD H,H",
	0x65: "LD H,L",
	0x66: "LD H,(HL)",
	0x67: "LD H,A",
	0x68: "LD L,B",
	0x69: "LD L,C",
	0x6A: "LD L,D",
	0x6B: "LD L,E",
	0x6C: "LD L,H",
	0x6D: "LD L,L",
	0x6E: "LD L,(HL)",
	0x6F: "LD L,A",
	0x70: "LD (HL),B",
	0x71: "LD (HL),C",
	0x72: "LD (HL),D",
	0x73: "LD (HL),E",
	0x74: "LD (HL),H",
	0x75: "LD (HL),L",
	0x76: "HALT",
	0x77: "LD (HL),A",
	0x78: "LD A,B",
	0x79: "LD A,C",
	0x7A: "LD A,D",
	0x7B: "LD A,E",
	0x7C: "LD A,H",
	0x7D: "LD A,L",
	0x7E: "LD A,(HL)",
	0x7F: "LD A,A",
	0x80: "ADD A,B",
	0x81: "ADD A,C",
	0x82: "ADD A,D",
	0x83: "ADD A,E",
	0x84: "ADD A,H",
	0x85: "ADD A,L",
	0x86: "ADD A,(HL)",
	0x87: "ADD A,A",
	0x88: "ADC A,B",
	0x89: "ADC A,C",
	0x8A: "ADC A,D",
	0x8B: "ADC A,E",
	0x8C: "ADC A,H",
	0x8D: "ADC A,L",
	0x8E: "ADC A,(HL)",
	0x8F: "ADC A,A",
	0x90: "SUB B",
	0x91: "SUB C",
	0x92: "SUB D",
	0x93: "SUB E",
	0x94: "SUB H",
	0x95: "SUB L",
	0x96: "SUB (HL)",
	0x97: "SUB A",
	0x98: "SBC A,B",
	0x99: "SBC A,C",
	0x9A: "SBC A,D",
	0x9B: "SBC A,E",
	0x9C: "SBC A,H",
	0x9D: "SBC A,L",
	0x9E: "SBC A,(HL)",
	0x9F: "SBC A,A",
	0xA0: "AND B",
	0xA1: "AND C",
	0xA2: "AND D",
	0xA3: "AND E",
	0xA4: "AND H",
	0xA5: "AND L",
	0xA6: "AND (HL)",
	0xA7: "AND A",
	0xA8: "XOR B",
	0xA9: "XOR C",
	0xAA: "XOR D",
	0xAB: "XOR E",
	0xAC: "XOR H",
	0xAD: "XOR L",
	0xAE: "XOR (HL)",
	0xAF: "XOR A",
	0xB0: "OR B",
	0xB1: "OR C",
	0xB2: "OR D",
	0xB3: "OR E",
	0xB4: "OR H",
	0xB5: "OR L",
	0xB6: "OR (HL)",
	0xB7: "OR A",
	0xB8: "CP B",
	0xB9: "CP C",
	0xBA: "CP D",
	0xBB: "CP E",
	0xBC: "CP H",
	0xBD: "CP L",
	0xBE: "CP (HL)",
	0xBF: "CP A",
	0xC0: "RET NZ",
	0xC1: "POP BC",
	0xC2: "JP NZ,%nn",
	0xC3: "JP %nn",
	0xC4: "CALL NZ,%nn",
	0xC5: "PUSH BC",
	0xC6: "ADD A,%n",
	0xC7: "RST 00H",
	0xC8: "RET Z",
	0xC9: "RET",
	0xCA: "JP Z,%nn",
	0xCB: "", // CB prefix
	0xCC: "CALL Z,%nn",
	0xCD: "CALL %nn",
	0xCE: "ADC A,%n",
	0xCF: "RST 08H",
	0xD0: "RET NC",
	0xD1: "POP DE",
	0xD2: "JP NC,%nn",
	0xD3: "OUT (%n),A",
	0xD4: "CALL NC,%nn",
	0xD5: "PUSH DE",
	0xD6: "SUB %n",
	0xD7: "RST 10H",
	0xD8: "RET C",
	0xD9: "EXX",
	0xDA: "JP C,%nn",
	0xDB: "IN A,(%n)",
	0xDC: "CALL C,%nn",
	0xDD: "", // IX prefix
	0xDE: "SBC A,%n",
	0xDF: "RST 18H",
	0xE0: "RET PO",
	0xE1: "POP HL",
	0xE2: "JP PO,%nn",
	0xE3: "EX (SP),HL",
	0xE4: "CALL PO,%nn",
	0xE5: "PUSH HL",
	0xE6: "AND %n",
	0xE7: "RST 20H",
	0xE8: "RET PE",
	0xE9: "JP (HL)",
	0xEA: "JP PE,%nn",
	0xEB: "EX DE,HL",
	0xEC: "CALL PE,%nn",
	0xED: "", // ED prefix
	0xEE: "XOR %n",
	0xEF: "RST 28H",
	0xF0: "RET P",
	0xF1: "POP AF",
	0xF2: "JP P,%nn",
	0xF3: "DI",
	0xF4: "CALL P,%nn",
	0xF5: "PUSH AF",
	0xF6: "OR %n",
	0xF7: "RST 30H",
	0xF8: "RET M",
	0xF9: "LD SP,HL",
	0xFA: "JP M,%nn",
	0xFB: "EI",
	0xFC: "CALL M,%nn",
	0xFD: "", // IY prefix
	0xFE: "CP %n",
	0xFF: "RST 38H",
}

// lengths holds the byte length of every unprefixed opcode (prefix bytes
// themselves are marked 1 and handled separately in Decode).
var lengths = [256]int{
	0x00: 1, 0x01: 3, 0x02: 1, 0x03: 1, 0x04: 1, 0x05: 1, 0x06: 2, 0x07: 1,
	0x08: 1, 0x09: 1, 0x0A: 1, 0x0B: 1, 0x0C: 1, 0x0D: 1, 0x0E: 2, 0x0F: 1,
	0x10: 2, 0x11: 3, 0x12: 1, 0x13: 1, 0x14: 1, 0x15: 1, 0x16: 2, 0x17: 1,
	0x18: 2, 0x19: 1, 0x1A: 1, 0x1B: 1, 0x1C: 1, 0x1D: 1, 0x1E: 2, 0x1F: 1,
	0x20: 2, 0x21: 3, 0x22: 3, 0x23: 1, 0x24: 1, 0x25: 1, 0x26: 2, 0x27: 1,
	0x28: 2, 0x29: 1, 0x2A: 3, 0x2B: 1, 0x2C: 1, 0x2D: 1, 0x2E: 2, 0x2F: 1,
	0x30: 2, 0x31: 3, 0x32: 3, 0x33: 1, 0x34: 1, 0x35: 1, 0x36: 2, 0x37: 1,
	0x38: 2, 0x39: 1, 0x3A: 3, 0x3B: 1, 0x3C: 1, 0x3D: 1, 0x3E: 2, 0x3F: 1,
	0x40: 1, 0x41: 1, 0x42: 1, 0x43: 1, 0x44: 1, 0x45: 1, 0x46: 1, 0x47: 1,
	0x48: 1, 0x49: 1, 0x4A: 1, 0x4B: 1, 0x4C: 1, 0x4D: 1, 0x4E: 1, 0x4F: 1,
	0x50: 1, 0x51: 1, 0x52: 1, 0x53: 1, 0x54: 1, 0x55: 1, 0x56: 1, 0x57: 1,
	0x58: 1, 0x59: 1, 0x5A: 1, 0x5B: 1, 0x5C: 1, 0x5D: 1, 0x5E: 1, 0x5F: 1,
	0x60: 1, 0x61: 1, 0x62: 1, 0x63: 1, 0x64: 1, 0x65: 1, 0x66: 1, 0x67: 1,
	0x68: 1, 0x69: 1, 0x6A: 1, 0x6B: 1, 0x6C: 1, 0x6D: 1, 0x6E: 1, 0x6F: 1,
	0x70: 1, 0x71: 1, 0x72: 1, 0x73: 1, 0x74: 1, 0x75: 1, 0x76: 1, 0x77: 1,
	0x78: 1, 0x79: 1, 0x7A: 1, 0x7B: 1, 0x7C: 1, 0x7D: 1, 0x7E: 1, 0x7F: 1,
	0x80: 1, 0x81: 1, 0x82: 1, 0x83: 1, 0x84: 1, 0x85: 1, 0x86: 1, 0x87: 1,
	0x88: 1, 0x89: 1, 0x8A: 1, 0x8B: 1, 0x8C: 1, 0x8D: 1, 0x8E: 1, 0x8F: 1,
	0x90: 1, 0x91: 1, 0x92: 1, 0x93: 1, 0x94: 1, 0x95: 1, 0x96: 1, 0x97: 1,
	0x98: 1, 0x99: 1, 0x9A: 1, 0x9B: 1, 0x9C: 1, 0x9D: 1, 0x9E: 1, 0x9F: 1,
	0xA0: 1, 0xA1: 1, 0xA2: 1, 0xA3: 1, 0xA4: 1, 0xA5: 1, 0xA6: 1, 0xA7: 1,
	0xA8: 1, 0xA9: 1, 0xAA: 1, 0xAB: 1, 0xAC: 1, 0xAD: 1, 0xAE: 1, 0xAF: 1,
	0xB0: 1, 0xB1: 1, 0xB2: 1, 0xB3: 1, 0xB4: 1, 0xB5: 1, 0xB6: 1, 0xB7: 1,
	0xB8: 1, 0xB9: 1, 0xBA: 1, 0xBB: 1, 0xBC: 1, 0xBD: 1, 0xBE: 1, 0xBF: 1,
	0xC0: 1, 0xC1: 1, 0xC2: 3, 0xC3: 3, 0xC4: 3, 0xC5: 1, 0xC6: 2, 0xC7: 1,
	0xC8: 1, 0xC9: 1, 0xCA: 3, 0xCB: 1, 0xCC: 3, 0xCD: 3, 0xCE: 2, 0xCF: 1,
	0xD0: 1, 0xD1: 1, 0xD2: 3, 0xD3: 2, 0xD4: 3, 0xD5: 1, 0xD6: 2, 0xD7: 1,
	0xD8: 1, 0xD9: 1, 0xDA: 3, 0xDB: 2, 0xDC: 3, 0xDD: 1, 0xDE: 2, 0xDF: 1,
	0xE0: 1, 0xE1: 1, 0xE2: 3, 0xE3: 1, 0xE4: 3, 0xE5: 1, 0xE6: 2, 0xE7: 1,
	0xE8: 1, 0xE9: 1, 0xEA: 3, 0xEB: 1, 0xEC: 3, 0xED: 1, 0xEE: 2, 0xEF: 1,
	0xF0: 1, 0xF1: 1, 0xF2: 3, 0xF3: 1, 0xF4: 3, 0xF5: 1, 0xF6: 2, 0xF7: 1,
	0xF8: 1, 0xF9: 1, 0xFA: 3, 0xFB: 1, 0xFC: 3, 0xFD: 1, 0xFE: 2, 0xFF: 1,
}

// edMnemonics names the ED-prefixed opcodes a debugger actually meets.
// Anything else disassembles as a raw byte pair.
var edMnemonics = map[byte]string{
	0x40: "IN B,(C)", 0x41: "OUT (C),B",
	0x42: "SBC HL,BC", 0x43: "LD (%nn),BC",
	0x44: "NEG", 0x45: "RETN", 0x46: "IM 0", 0x47: "LD I,A",
	0x4A: "ADC HL,BC", 0x4B: "LD BC,(%nn)", 0x4D: "RETI", 0x4F: "LD R,A",
	0x52: "SBC HL,DE", 0x53: "LD (%nn),DE", 0x56: "IM 1", 0x57: "LD A,I",
	0x5A: "ADC HL,DE", 0x5B: "LD DE,(%nn)", 0x5E: "IM 2", 0x5F: "LD A,R",
	0x62: "SBC HL,HL", 0x63: "LD (%nn),HL", 0x67: "RRD",
	0x6A: "ADC HL,HL", 0x6B: "LD HL,(%nn)", 0x6F: "RLD",
	0x72: "SBC HL,SP", 0x73: "LD (%nn),SP",
	0x7A: "ADC HL,SP", 0x7B: "LD SP,(%nn)",
	0xA0: "LDI", 0xA1: "CPI", 0xA2: "INI", 0xA3: "OUTI",
	0xA8: "LDD", 0xA9: "CPD", 0xAA: "IND", 0xAB: "OUTD",
	0xB0: "LDIR", 0xB1: "CPIR", 0xB2: "INIR", 0xB3: "OTIR",
	0xB8: "LDDR", 0xB9: "CPDR", 0xBA: "INDR", 0xBB: "OTDR",
}

var cbOps = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}

var regNames8 = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// indexedDisplacement reports whether a DD/FD-prefixed form of op carries
// an extra displacement byte, i.e. the unprefixed form addresses (HL).
func indexedDisplacement(op byte) bool {
	switch {
	case op == 0x34 || op == 0x35 || op == 0x36:
		return true
	case op == 0x76:
		return false // HALT, not LD (HL),(HL)
	case op >= 0x40 && op <= 0xBF:
		return op&0x07 == 0x06 || (op >= 0x70 && op <= 0x77)
	}
	return false
}
