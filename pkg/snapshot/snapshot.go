// Package snapshot parses ZX Spectrum memory-image files (.sna, .nex)
// into 16KB banks plus whatever CPU state the format carries.
package snapshot

// BankSize is the size of one addressable memory bank.
const BankSize = 0x4000

// MemBank is one 16KB bank of a parsed image.
type MemBank struct {
	Index int    // bank number in the target's banking scheme
	Data  []byte // always BankSize bytes
}

// RegisterState is the CPU state restored after loading an image.
// Only SNA carries the full set; NEX provides SP and PC.
type RegisterState struct {
	PC, SP                 uint16
	AF, BC, DE, HL         uint16
	IX, IY                 uint16
	AF2, BC2, DE2, HL2     uint16
	R, I                   uint8
	IM, Border, IFF2, Port uint8
}

// Snapshot is a parsed memory image.
type Snapshot struct {
	Banks []MemBank
	Regs  *RegisterState // nil when the format has no full CPU state
}
