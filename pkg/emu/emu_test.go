package emu

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitzhangjie/zxdbg/pkg/dzrp"
)

// newTarget wires a fresh machine into a debug session.
func newTarget(t *testing.T) (*dzrp.Remote, *Machine) {
	t.Helper()
	m := NewMachine()
	r := dzrp.New(m, dzrp.WithWarnf(func(string, ...interface{}) {}))
	m.SetHandler(r)
	return r, m
}

func loadProgram(t *testing.T, r *dzrp.Remote, addr uint16, code []byte) {
	t.Helper()
	require.Nil(t, r.WriteMemory(addr, code))
	_, err := r.SetRegisterValue(dzrp.RegPC, addr)
	require.Nil(t, err)
}

func TestContinueHitsBreakpoint(t *testing.T) {
	r, _ := newTarget(t)
	loadProgram(t, r, 0x8000, []byte{
		0x00, // NOP
		0x00, // NOP
		0x00, // NOP
		0x76, // HALT
	})

	bp := &dzrp.Breakpoint{Addr: 0x8002}
	id, err := r.SetBreakpoint(bp)
	require.Nil(t, err)
	require.Equal(t, uint16(1), id)

	b, err := r.Continue(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "breakpoint 1 hit at 0x8002", b.Reason)
	assert.Equal(t, uint32(CPUFreq), b.CPUFreq)

	regs, err := r.Registers()
	require.Nil(t, err)
	assert.Equal(t, uint16(0x8002), regs.PC)
}

func TestContinueUntilHalt(t *testing.T) {
	r, _ := newTarget(t)
	loadProgram(t, r, 0x8000, []byte{0x00, 0x76})

	b, err := r.Continue(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "halted", b.Reason)
}

func TestStepIntoCall(t *testing.T) {
	r, _ := newTarget(t)
	loadProgram(t, r, 0x8000, []byte{0xCD, 0x10, 0x80}) // CALL 0x8010
	require.Nil(t, r.WriteMemory(0x8010, []byte{0xC9})) // RET

	res, err := r.StepInto(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "CALL 0x8010", res.Instruction)
	assert.Equal(t, "", res.Reason)

	regs, err := r.Registers()
	require.Nil(t, err)
	assert.Equal(t, uint16(0x8010), regs.PC)
	assert.Equal(t, uint16(0xFFFC), regs.SP, "the return address is on the stack")
}

func TestStepOverCall(t *testing.T) {
	r, _ := newTarget(t)
	loadProgram(t, r, 0x8000, []byte{0xCD, 0x10, 0x80})
	require.Nil(t, r.WriteMemory(0x8010, []byte{0x00, 0xC9})) // NOP; RET

	res, err := r.StepOver(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "", res.Reason)

	regs, err := r.Registers()
	require.Nil(t, err)
	assert.Equal(t, uint16(0x8003), regs.PC, "step-over lands after the call")
	assert.Equal(t, uint16(0xFFFE), regs.SP)
}

func TestStepOutOfSubroutine(t *testing.T) {
	r, _ := newTarget(t)
	loadProgram(t, r, 0x8000, []byte{
		0xCD, 0x10, 0x80, // CALL 0x8010
		0x76, // HALT
	})
	require.Nil(t, r.WriteMemory(0x8010, []byte{
		0x3E, 0x03, // LD A,3
		0x3D,       // DEC A       <- loop
		0x20, 0xFD, // JR NZ,loop
		0xC9, // RET
	}))

	_, err := r.StepInto(context.Background())
	require.Nil(t, err)

	b, err := r.StepOut(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "", b.Reason)

	regs, err := r.Registers()
	require.Nil(t, err)
	assert.Equal(t, uint16(0x8003), regs.PC, "step-out lands on the instruction after the call")
	assert.Equal(t, uint16(0xFFFE), regs.SP)
}

func TestStepOutStopsAtBreakpointInside(t *testing.T) {
	r, _ := newTarget(t)
	loadProgram(t, r, 0x8000, []byte{0xCD, 0x10, 0x80, 0x76})
	require.Nil(t, r.WriteMemory(0x8010, []byte{0x00, 0x00, 0xC9}))

	_, err := r.StepInto(context.Background())
	require.Nil(t, err)

	bp := &dzrp.Breakpoint{Addr: 0x8011}
	_, err = r.SetBreakpoint(bp)
	require.Nil(t, err)

	b, err := r.StepOut(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "breakpoint 1 hit at 0x8011", b.Reason)
}

func TestPauseStopsContinue(t *testing.T) {
	r, _ := newTarget(t)
	loadProgram(t, r, 0x8000, []byte{0x18, 0xFE}) // JR -2: spin forever

	type result struct {
		b   dzrp.Break
		err error
	}
	done := make(chan result, 1)
	go func() {
		b, err := r.Continue(context.Background())
		done <- result{b, err}
	}()

	time.Sleep(50 * time.Millisecond)
	require.Nil(t, r.Pause())

	res := <-done
	require.Nil(t, res.err)
	assert.Equal(t, "paused", res.b.Reason)
}

func TestUnimplementedOpcodeStops(t *testing.T) {
	r, _ := newTarget(t)
	loadProgram(t, r, 0x8000, []byte{0xED, 0xB0}) // LDIR, not interpreted

	b, err := r.Continue(context.Background())
	require.Nil(t, err)
	assert.Contains(t, b.Reason, "unimplemented opcode")
	assert.Contains(t, b.Reason, "0x8000")
}

func TestBreakpointTableExhaustion(t *testing.T) {
	m := NewMachine()

	for i := 1; i <= BreakpointSlots; i++ {
		id, err := m.AddBreakpoint(uint16(0x8000 + i))
		require.Nil(t, err)
		assert.Equal(t, uint16(i), id)
	}

	id, err := m.AddBreakpoint(0x9000)
	require.Nil(t, err)
	assert.Equal(t, uint16(0), id, "a full table answers with id 0")

	// freeing a slot makes its id available again
	require.Nil(t, m.RemoveBreakpoint(5))
	id, err = m.AddBreakpoint(0x9000)
	require.Nil(t, err)
	assert.Equal(t, uint16(5), id)
}

func TestRemoveBreakpointErrors(t *testing.T) {
	m := NewMachine()
	assert.NotNil(t, m.RemoveBreakpoint(0))
	assert.NotNil(t, m.RemoveBreakpoint(1))
	assert.NotNil(t, m.RemoveBreakpoint(BreakpointSlots+1))
}

func TestWriteBankMapping(t *testing.T) {
	m := NewMachine()

	half := make([]byte, dzrp.HalfBankSize)
	for i := range half {
		half[i] = 0xA5
	}

	// bank 5 is mapped at 0x4000; its halves are 10 and 11
	require.Nil(t, m.WriteBank(10, half))
	buf, err := m.ReadMemory(0x4000, 4)
	require.Nil(t, err)
	assert.Equal(t, []byte{0xA5, 0xA5, 0xA5, 0xA5}, buf)

	require.Nil(t, m.WriteBank(11, half))
	buf, err = m.ReadMemory(0x6000, 1)
	require.Nil(t, err)
	assert.Equal(t, byte(0xA5), buf[0])

	// bank 0 is mapped at 0xC000
	require.Nil(t, m.WriteBank(0, half))
	buf, err = m.ReadMemory(0xC000, 1)
	require.Nil(t, err)
	assert.Equal(t, byte(0xA5), buf[0])
}

func TestWriteBankValidation(t *testing.T) {
	m := NewMachine()
	assert.NotNil(t, m.WriteBank(16, make([]byte, dzrp.HalfBankSize)))
	assert.NotNil(t, m.WriteBank(-1, make([]byte, dzrp.HalfBankSize)))
	assert.NotNil(t, m.WriteBank(0, make([]byte, 100)))
}
