package snapshot

import (
	"bytes"
	"fmt"
	"os"
)

const (
	nexHeaderSize = 512
	nexMaxBanks   = 112
)

// nexBankOrder is the order banks are stored in the file: the classic
// screen/program banks first, then the rest ascending.
var nexBankOrder = buildNexBankOrder()

func buildNexBankOrder() []int {
	order := []int{5, 2, 0, 1, 3, 4}
	for i := 6; i < nexMaxBanks; i++ {
		order = append(order, i)
	}
	return order
}

// ParseNEX reads a .nex image. Of the 512-byte header this needs only the
// magic, SP, PC and the bank-present table; loading screens, palettes and
// copper code are not supported and rejected up front.
func ParseNEX(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < nexHeaderSize {
		return nil, fmt.Errorf("nex %s: truncated header, %d bytes", path, len(data))
	}
	if !bytes.Equal(data[0:4], []byte("Next")) {
		return nil, fmt.Errorf("nex %s: bad magic %q", path, data[0:4])
	}

	screens := data[10]
	if screens != 0 {
		return nil, fmt.Errorf("nex %s: loading screens not supported (flags 0x%02X)", path, screens)
	}

	regs := &RegisterState{
		SP:     word(data[12:]),
		PC:     word(data[14:]),
		Border: data[11],
	}

	present := data[18 : 18+nexMaxBanks]
	rest := data[nexHeaderSize:]

	var banks []MemBank
	for _, idx := range nexBankOrder {
		if present[idx] == 0 {
			continue
		}
		if len(rest) < BankSize {
			return nil, fmt.Errorf("nex %s: missing bank %d", path, idx)
		}
		banks = append(banks, MemBank{Index: idx, Data: rest[:BankSize]})
		rest = rest[BankSize:]
	}

	declared := int(data[9])
	if declared != len(banks) {
		return nil, fmt.Errorf("nex %s: header declares %d banks, file has %d", path, declared, len(banks))
	}

	return &Snapshot{Banks: banks, Regs: regs}, nil
}
