package dzrp

import (
	"fmt"
	"strings"
)

// Register identifies one register of the Z80 register file.
type Register int

const (
	RegPC Register = iota
	RegSP
	RegAF
	RegBC
	RegDE
	RegHL
	RegIX
	RegIY
	RegAF2
	RegBC2
	RegDE2
	RegHL2
	RegR
	RegI
)

var registerNames = [...]string{
	RegPC: "PC", RegSP: "SP",
	RegAF: "AF", RegBC: "BC", RegDE: "DE", RegHL: "HL",
	RegIX: "IX", RegIY: "IY",
	RegAF2: "AF'", RegBC2: "BC'", RegDE2: "DE'", RegHL2: "HL'",
	RegR: "R", RegI: "I",
}

func (r Register) String() string {
	if r < 0 || int(r) >= len(registerNames) {
		return fmt.Sprintf("Register(%d)", int(r))
	}
	return registerNames[r]
}

// ParseRegister resolves a register name as typed in the shell.
func ParseRegister(name string) (Register, error) {
	for i, n := range registerNames {
		if strings.EqualFold(n, name) {
			return Register(i), nil
		}
	}
	return 0, fmt.Errorf("unknown register %q", name)
}

// restoreOrder is the fixed order registers are restored in after
// loading a full-state snapshot.
var restoreOrder = []Register{
	RegPC, RegSP,
	RegAF, RegBC, RegDE, RegHL,
	RegIX, RegIY,
	RegAF2, RegBC2, RegDE2, RegHL2,
	RegR, RegI,
}

// RegisterFile is one complete register snapshot as fetched from the
// remote. R and I are 8-bit; everything else is a 16-bit pair.
type RegisterFile struct {
	PC, SP             uint16
	AF, BC, DE, HL     uint16
	IX, IY             uint16
	AF2, BC2, DE2, HL2 uint16
	R, I               uint8
}

// Value returns the named register widened to 16 bits.
func (f *RegisterFile) Value(reg Register) uint16 {
	switch reg {
	case RegPC:
		return f.PC
	case RegSP:
		return f.SP
	case RegAF:
		return f.AF
	case RegBC:
		return f.BC
	case RegDE:
		return f.DE
	case RegHL:
		return f.HL
	case RegIX:
		return f.IX
	case RegIY:
		return f.IY
	case RegAF2:
		return f.AF2
	case RegBC2:
		return f.BC2
	case RegDE2:
		return f.DE2
	case RegHL2:
		return f.HL2
	case RegR:
		return uint16(f.R)
	case RegI:
		return uint16(f.I)
	}
	return 0
}

// SetValue stores value into the named register, truncating for the
// 8-bit ones.
func (f *RegisterFile) SetValue(reg Register, value uint16) {
	switch reg {
	case RegPC:
		f.PC = value
	case RegSP:
		f.SP = value
	case RegAF:
		f.AF = value
	case RegBC:
		f.BC = value
	case RegDE:
		f.DE = value
	case RegHL:
		f.HL = value
	case RegIX:
		f.IX = value
	case RegIY:
		f.IY = value
	case RegAF2:
		f.AF2 = value
	case RegBC2:
		f.BC2 = value
	case RegDE2:
		f.DE2 = value
	case RegHL2:
		f.HL2 = value
	case RegR:
		f.R = uint8(value)
	case RegI:
		f.I = uint8(value)
	}
}

// ensureRegisters fetches the register file unless the cache is valid.
func (r *Remote) ensureRegisters() error {
	if r.regsValid.Load() {
		return nil
	}
	regs, err := r.cmd.GetRegisters()
	if err != nil {
		return fmt.Errorf("get registers: %w", err)
	}
	r.regs = *regs
	r.regsValid.Store(true)
	return nil
}

// InvalidateRegisters drops the cached register file. It is called
// after every command that can change CPU state.
func (r *Remote) InvalidateRegisters() {
	r.regsValid.Store(false)
}

// Registers returns a copy of the register file, fetching it first if
// the cache is invalid.
func (r *Remote) Registers() (RegisterFile, error) {
	if err := r.ensureRegisters(); err != nil {
		return RegisterFile{}, err
	}
	return r.regs, nil
}

// RegisterValue returns one register, fetching the file first if the
// cache is invalid.
func (r *Remote) RegisterValue(reg Register) (uint16, error) {
	if err := r.ensureRegisters(); err != nil {
		return 0, err
	}
	return r.regs.Value(reg), nil
}

// SetRegisterValue writes one register and returns the value the remote
// actually stored, which may differ from the one sent (registers with
// fewer usable bits). The cache is refilled from the remote, never
// patched locally.
func (r *Remote) SetRegisterValue(reg Register, value uint16) (uint16, error) {
	if err := r.cmd.SetRegister(reg, value); err != nil {
		return 0, fmt.Errorf("set %s: %w", reg, err)
	}
	r.InvalidateRegisters()
	if err := r.ensureRegisters(); err != nil {
		return 0, err
	}
	return r.regs.Value(reg), nil
}
