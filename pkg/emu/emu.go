// Package emu is an in-process target implementing the DZRP command
// set: a small Z80 interpreter over 128KB of banked RAM with a bounded
// breakpoint table. It exists so a debug session can run end to end
// without external hardware, and it executes enough of the instruction
// set to exercise stepping, calls and returns.
package emu

import (
	"errors"
	"fmt"

	"go.uber.org/atomic"

	"github.com/hitzhangjie/zxdbg/pkg/dzrp"
	"github.com/hitzhangjie/zxdbg/pkg/snapshot"
)

const (
	// BreakpointSlots is the size of the breakpoint table; a full table
	// answers AddBreakpoint with id 0.
	BreakpointSlots = 16

	// CPUFreq is the reported clock, the classic 3.5MHz.
	CPUFreq = 3_500_000

	// watchdog bounds a single continue so a program with no stop
	// condition cannot hang the session forever.
	watchdog = 10_000_000
)

// Machine is the in-process target. It holds 8 banks of 16KB RAM; the
// 64KB CPU address space maps them ZX-128 style, with bank 7 standing
// in for ROM at 0x0000 (writable, this is a test machine).
type Machine struct {
	banks [8][snapshot.BankSize]byte
	slots [4]int

	regs    dzrp.RegisterFile
	bps     [BreakpointSlots]int // breakpoint addr per slot, -1 = free
	paused  *atomic.Bool
	halted  bool
	tstates uint32

	handler dzrp.BreakHandler
}

var _ dzrp.Commander = (*Machine)(nil)

// NewMachine creates a reset machine: PC 0, SP at the top of RAM,
// default bank mapping 7/5/2/0.
func NewMachine() *Machine {
	m := &Machine{
		slots:  [4]int{7, 5, 2, 0},
		paused: atomic.NewBool(false),
	}
	m.regs.SP = 0xFFFE
	for i := range m.bps {
		m.bps[i] = -1
	}
	return m
}

// SetHandler attaches the receiver of break notifications. It must be
// called before Continue.
func (m *Machine) SetHandler(h dzrp.BreakHandler) {
	m.handler = h
}

func (m *Machine) GetConfig() (*dzrp.Config, error) {
	return &dzrp.Config{
		DZRPVersion: "2.0.0",
		Program:     "zxdbg in-process emulator",
		MachineType: 1,
	}, nil
}

func (m *Machine) GetRegisters() (*dzrp.RegisterFile, error) {
	regs := m.regs
	return &regs, nil
}

func (m *Machine) SetRegister(reg dzrp.Register, value uint16) error {
	m.regs.SetValue(reg, value)
	return nil
}

func (m *Machine) Pause() error {
	m.paused.Store(true)
	return nil
}

func (m *Machine) AddBreakpoint(addr uint16) (uint16, error) {
	for i := range m.bps {
		if m.bps[i] < 0 {
			m.bps[i] = int(addr)
			return uint16(i + 1), nil
		}
	}
	return 0, nil // table full
}

func (m *Machine) RemoveBreakpoint(id uint16) error {
	if id == 0 || int(id) > BreakpointSlots || m.bps[id-1] < 0 {
		return fmt.Errorf("no breakpoint with id %d", id)
	}
	m.bps[id-1] = -1
	return nil
}

func (m *Machine) ReadMemory(addr uint16, size int) ([]byte, error) {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = m.read(addr + uint16(i))
	}
	return buf, nil
}

func (m *Machine) WriteMemory(addr uint16, data []byte) error {
	for i, b := range data {
		m.write(addr+uint16(i), b)
	}
	return nil
}

func (m *Machine) WriteBank(halfBank int, data []byte) error {
	if halfBank < 0 || halfBank >= 2*len(m.banks) {
		return fmt.Errorf("half bank %d out of range", halfBank)
	}
	if len(data) != dzrp.HalfBankSize {
		return fmt.Errorf("half bank %d: got %d bytes, want %d", halfBank, len(data), dzrp.HalfBankSize)
	}
	offset := (halfBank % 2) * dzrp.HalfBankSize
	copy(m.banks[halfBank/2][offset:], data)
	return nil
}

// Continue runs the interpreter until a stop condition and delivers the
// break notification synchronously before returning.
func (m *Machine) Continue(bp1, bp2 int) error {
	if m.handler == nil {
		return errors.New("no break handler attached")
	}
	m.paused.Store(false)
	m.halted = false

	var reason string
	for i := 0; i < watchdog; i++ {
		if stop := m.step(); stop != "" {
			reason = stop
			break
		}
		pc := int(m.regs.PC)
		// a registered breakpoint outranks a temporary stepping one at
		// the same address, so stepping onto it still reports it
		if id := m.breakpointAt(m.regs.PC); id != 0 {
			reason = fmt.Sprintf("breakpoint %d hit at 0x%04X", id, pc)
			break
		}
		if pc == bp1 || pc == bp2 {
			// temporary stepping breakpoint: normal completion
			break
		}
		if m.paused.Load() {
			reason = "paused"
			break
		}
		if i == watchdog-1 {
			reason = "watchdog: no stop condition reached"
		}
	}

	m.handler.HandleBreak(dzrp.Break{
		Reason:  reason,
		TStates: m.tstates,
		CPUFreq: CPUFreq,
	})
	return nil
}

func (m *Machine) breakpointAt(pc uint16) uint16 {
	for i, addr := range m.bps {
		if addr == int(pc) {
			return uint16(i + 1)
		}
	}
	return 0
}

func (m *Machine) read(addr uint16) byte {
	return m.banks[m.slots[addr>>14]][addr&0x3FFF]
}

func (m *Machine) write(addr uint16, b byte) {
	m.banks[m.slots[addr>>14]][addr&0x3FFF] = b
}
