package snapshot

import (
	"encoding/binary"
	"fmt"
	"os"
)

const (
	snaHeaderSize = 27
	sna48Size     = snaHeaderSize + 3*BankSize
	sna128Trailer = 4 // PC (2), port 0x7FFD, TR-DOS flag
)

// ParseSNA reads a .sna image, either the 48K or the 128K layout.
//
// The 27-byte header is:
//
//	00    I
//	01-08 HL' DE' BC' AF'
//	09-14 HL DE BC
//	15-18 IY IX
//	19    IFF2
//	20    R
//	21-22 AF
//	23-24 SP
//	25    IM
//	26    border color
//
// In the 48K layout PC is on the stack (the image is resumed with RETN);
// in the 128K layout it sits in a trailer after the first 48K of RAM.
func ParseSNA(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < sna48Size {
		return nil, fmt.Errorf("sna %s: truncated, %d bytes", path, len(data))
	}

	regs := &RegisterState{
		I:      data[0],
		HL2:    word(data[1:]),
		DE2:    word(data[3:]),
		BC2:    word(data[5:]),
		AF2:    word(data[7:]),
		HL:     word(data[9:]),
		DE:     word(data[11:]),
		BC:     word(data[13:]),
		IY:     word(data[15:]),
		IX:     word(data[17:]),
		IFF2:   data[19],
		R:      data[20],
		AF:     word(data[21:]),
		SP:     word(data[23:]),
		IM:     data[25],
		Border: data[26],
	}

	ram := data[snaHeaderSize:]
	if len(data) == sna48Size {
		return parseSNA48(path, regs, ram)
	}
	return parseSNA128(path, regs, ram)
}

// parseSNA48 lays out the three RAM blocks as banks 5, 2, 0 and pops PC
// from the stack image, mirroring the RETN a real loader executes.
func parseSNA48(path string, regs *RegisterState, ram []byte) (*Snapshot, error) {
	// the popped PC needs two bytes of stack image inside RAM
	if regs.SP < 0x4000 || regs.SP > 0xFFFE {
		return nil, fmt.Errorf("sna %s: SP 0x%04X leaves no room for the stacked PC", path, regs.SP)
	}
	regs.PC = word(ram[regs.SP-0x4000:])
	regs.SP += 2

	return &Snapshot{
		Banks: []MemBank{
			{Index: 5, Data: ram[0*BankSize : 1*BankSize]},
			{Index: 2, Data: ram[1*BankSize : 2*BankSize]},
			{Index: 0, Data: ram[2*BankSize : 3*BankSize]},
		},
		Regs: regs,
	}, nil
}

// parseSNA128 reads the trailer and the remaining banks. The first 48K
// holds banks 5, 2 and the bank paged in at 0xC000; the rest follow in
// ascending order, skipping those three.
func parseSNA128(path string, regs *RegisterState, ram []byte) (*Snapshot, error) {
	if len(ram) < 3*BankSize+sna128Trailer {
		return nil, fmt.Errorf("sna %s: truncated 128K image", path)
	}

	trailer := ram[3*BankSize:]
	regs.PC = word(trailer)
	regs.Port = trailer[2]
	paged := int(regs.Port & 0x07)

	banks := []MemBank{
		{Index: 5, Data: ram[0*BankSize : 1*BankSize]},
		{Index: 2, Data: ram[1*BankSize : 2*BankSize]},
		{Index: paged, Data: ram[2*BankSize : 3*BankSize]},
	}

	rest := ram[3*BankSize+sna128Trailer:]
	for i := 0; i < 8; i++ {
		if i == 5 || i == 2 || i == paged {
			continue
		}
		if len(rest) < BankSize {
			return nil, fmt.Errorf("sna %s: missing bank %d", path, i)
		}
		banks = append(banks, MemBank{Index: i, Data: rest[:BankSize]})
		rest = rest[BankSize:]
	}

	return &Snapshot{Banks: banks, Regs: regs}, nil
}

func word(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}
