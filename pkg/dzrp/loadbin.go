package dzrp

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hitzhangjie/zxdbg/pkg/snapshot"
)

// LoadBin loads a binary memory image into the target, dispatching on
// the file extension (.sna, .nex). Banks written before a failure stay
// written; there is no rollback. The register cache is invalid after the
// call whatever happened.
func (r *Remote) LoadBin(path string) error {
	defer r.InvalidateRegisters()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".sna":
		return r.loadBinSna(path)
	case ".nex":
		return r.loadBinNex(path)
	default:
		return fmt.Errorf("unsupported snapshot format: %s", path)
	}
}

// loadBinSna transfers the image's banks and restores the full CPU
// state in the fixed register order.
func (r *Remote) loadBinSna(path string) error {
	sna, err := snapshot.ParseSNA(path)
	if err != nil {
		return err
	}
	if err := r.writeBanks(sna.Banks); err != nil {
		return err
	}
	regs := snapshotRegs(sna.Regs)
	for _, reg := range restoreOrder {
		if err := r.cmd.SetRegister(reg, regs.Value(reg)); err != nil {
			return fmt.Errorf("restore %s: %w", reg, err)
		}
	}
	return nil
}

func snapshotRegs(s *snapshot.RegisterState) RegisterFile {
	return RegisterFile{
		PC: s.PC, SP: s.SP,
		AF: s.AF, BC: s.BC, DE: s.DE, HL: s.HL,
		IX: s.IX, IY: s.IY,
		AF2: s.AF2, BC2: s.BC2, DE2: s.DE2, HL2: s.HL2,
		R: s.R, I: s.I,
	}
}

// loadBinNex transfers the image's banks and restores SP then PC; the
// format carries no shadow-register, I or R state.
func (r *Remote) loadBinNex(path string) error {
	nex, err := snapshot.ParseNEX(path)
	if err != nil {
		return err
	}
	if err := r.writeBanks(nex.Banks); err != nil {
		return err
	}
	if err := r.cmd.SetRegister(RegSP, nex.Regs.SP); err != nil {
		return fmt.Errorf("restore SP: %w", err)
	}
	if err := r.cmd.SetRegister(RegPC, nex.Regs.PC); err != nil {
		return fmt.Errorf("restore PC: %w", err)
	}
	return nil
}

// writeBanks transfers each 16KB bank as two 8KB halves, addressed
// 2*bank and 2*bank+1, in bank order.
func (r *Remote) writeBanks(banks []snapshot.MemBank) error {
	for _, b := range banks {
		lo := b.Data[:HalfBankSize]
		hi := b.Data[HalfBankSize:]
		if err := r.cmd.WriteBank(2*b.Index, lo); err != nil {
			return fmt.Errorf("write bank %d: %w", b.Index, err)
		}
		if err := r.cmd.WriteBank(2*b.Index+1, hi); err != nil {
			return fmt.Errorf("write bank %d: %w", b.Index, err)
		}
	}
	return nil
}
