package dzrp

import (
	"fmt"
)

// fakeCommander is a scripted transport for the session tests. Commands
// it doesn't override fall through to UnimplementedCommander and fail
// with ErrNotWired.
type fakeCommander struct {
	UnimplementedCommander

	remote *Remote

	regs     RegisterFile
	getCount int
	sets     []string // recorded "REG=0xVALUE", in call order

	mem [65536]byte

	nextID  uint16
	addIDs  []uint16 // queued AddBreakpoint answers, drained in order
	added   []uint16 // recorded addresses
	removed []uint16 // recorded ids

	continues  [][2]int // recorded (bp1, bp2)
	onContinue func(bp1, bp2 int) (Break, bool) // scripted stop; false = stay pending

	bankWrites []bankWrite
}

type bankWrite struct {
	halfBank int
	size     int
}

func newFake() *fakeCommander {
	return &fakeCommander{}
}

func (f *fakeCommander) GetConfig() (*Config, error) {
	return &Config{DZRPVersion: "2.0.0", Program: "fake"}, nil
}

func (f *fakeCommander) GetRegisters() (*RegisterFile, error) {
	f.getCount++
	regs := f.regs
	return &regs, nil
}

func (f *fakeCommander) SetRegister(reg Register, value uint16) error {
	f.sets = append(f.sets, fmt.Sprintf("%s=0x%04X", reg, value))
	f.regs.SetValue(reg, value)
	return nil
}

func (f *fakeCommander) Continue(bp1, bp2 int) error {
	f.continues = append(f.continues, [2]int{bp1, bp2})
	if f.onContinue == nil {
		return nil // stays pending, resolved by the test
	}
	b, stop := f.onContinue(bp1, bp2)
	if stop {
		f.remote.HandleBreak(b)
	}
	return nil
}

func (f *fakeCommander) Pause() error {
	return nil
}

func (f *fakeCommander) AddBreakpoint(addr uint16) (uint16, error) {
	f.added = append(f.added, addr)
	if len(f.addIDs) > 0 {
		id := f.addIDs[0]
		f.addIDs = f.addIDs[1:]
		return id, nil
	}
	f.nextID++
	return f.nextID, nil
}

func (f *fakeCommander) RemoveBreakpoint(id uint16) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeCommander) ReadMemory(addr uint16, size int) ([]byte, error) {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = f.mem[addr+uint16(i)]
	}
	return buf, nil
}

func (f *fakeCommander) WriteMemory(addr uint16, data []byte) error {
	for i, b := range data {
		f.mem[addr+uint16(i)] = b
	}
	return nil
}

func (f *fakeCommander) WriteBank(halfBank int, data []byte) error {
	f.bankWrites = append(f.bankWrites, bankWrite{halfBank: halfBank, size: len(data)})
	return nil
}

// newSession wires a fake transport to a fresh Remote with warnings
// collected instead of printed.
func newSession() (*Remote, *fakeCommander, *[]string) {
	f := newFake()
	warnings := []string{}
	r := New(f, WithWarnf(func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}))
	f.remote = r
	return r, f, &warnings
}
