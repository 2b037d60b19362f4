package dzrp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContinueResolvedByBreak(t *testing.T) {
	r, f, _ := newSession()
	f.regs.PC = 0x8000
	_, err := r.Registers() // prime the cache
	require.Nil(t, err)

	f.onContinue = func(bp1, bp2 int) (Break, bool) {
		f.regs.PC = 0x9000
		return Break{Reason: "breakpoint 1 hit at 0x9000", TStates: 1234, CPUFreq: 3500000}, true
	}

	b, err := r.Continue(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "breakpoint 1 hit at 0x9000", b.Reason)
	assert.Equal(t, uint32(1234), b.TStates)
	assert.Equal(t, [2]int{NoBreakpoint, NoBreakpoint}, f.continues[0])

	// resuming invalidated the cache, so this is a fresh fetch
	before := f.getCount
	regs, err := r.Registers()
	require.Nil(t, err)
	assert.Equal(t, before+1, f.getCount)
	assert.Equal(t, uint16(0x9000), regs.PC)
}

func TestContinueWhileRunningRejected(t *testing.T) {
	r, _, _ := newSession()

	ch, err := r.start()
	require.Nil(t, err)

	_, err = r.Continue(context.Background())
	assert.Equal(t, ErrAlreadyRunning, err)

	_, err = r.StepInto(context.Background())
	assert.Equal(t, ErrAlreadyRunning, err)

	r.HandleBreak(Break{Reason: "paused"})
	b, err := r.wait(context.Background(), ch)
	require.Nil(t, err)
	assert.Equal(t, "paused", b.Reason)

	// the slot is free again
	_, err = r.start()
	assert.Nil(t, err)
	r.abort()
}

func TestContinueCanceled(t *testing.T) {
	r, _, warnings := newSession()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Continue(ctx)
	assert.Equal(t, context.Canceled, err)

	// a late notification finds no request pending and is dropped
	r.HandleBreak(Break{Reason: "breakpoint 1 hit at 0x9000"})
	assert.Len(t, *warnings, 1)

	_, err = r.start()
	assert.Nil(t, err)
	r.abort()
}

// runStep executes one scripted step and returns the temporary
// breakpoint pair the session asked for.
func runStep(t *testing.T, r *Remote, f *fakeCommander, over bool) [2]int {
	t.Helper()
	f.onContinue = func(bp1, bp2 int) (Break, bool) {
		if bp1 >= 0 {
			f.regs.PC = uint16(bp1)
		}
		return Break{}, true
	}
	var err error
	if over {
		_, err = r.StepOver(context.Background())
	} else {
		_, err = r.StepInto(context.Background())
	}
	require.Nil(t, err)
	return f.continues[len(f.continues)-1]
}

func TestStepTemporaryBreakpoints(t *testing.T) {
	tests := []struct {
		name    string
		program []byte
		over    bool
		setup   func(f *fakeCommander)
		bp1     int
		bp2     int
	}{
		{name: "nop", program: []byte{0x00}, bp1: 0x8001, bp2: NoBreakpoint},
		{name: "ld bc nn", program: []byte{0x01, 0x34, 0x12}, bp1: 0x8003, bp2: NoBreakpoint},
		{name: "call into", program: []byte{0xCD, 0x00, 0x90}, bp1: 0x9000, bp2: NoBreakpoint},
		{name: "call over", program: []byte{0xCD, 0x00, 0x90}, over: true, bp1: 0x8003, bp2: NoBreakpoint},
		{name: "call nz into", program: []byte{0xC4, 0x00, 0x90}, bp1: 0x9000, bp2: 0x8003},
		{name: "call nz over", program: []byte{0xC4, 0x00, 0x90}, over: true, bp1: 0x8003, bp2: NoBreakpoint},
		{name: "rst 28 into", program: []byte{0xEF}, bp1: 0x0028, bp2: NoBreakpoint},
		{name: "rst 28 over", program: []byte{0xEF}, over: true, bp1: 0x8001, bp2: NoBreakpoint},
		{
			name: "ret", program: []byte{0xC9},
			setup: func(f *fakeCommander) {
				f.regs.SP = 0xFFF0
				f.mem[0xFFF0], f.mem[0xFFF1] = 0x34, 0x12
			},
			bp1: 0x1234, bp2: NoBreakpoint,
		},
		{
			name: "ret nz", program: []byte{0xC0},
			setup: func(f *fakeCommander) {
				f.regs.SP = 0xFFF0
				f.mem[0xFFF0], f.mem[0xFFF1] = 0x34, 0x12
			},
			bp1: 0x1234, bp2: 0x8001,
		},
		{name: "jp nn", program: []byte{0xC3, 0x00, 0x70}, bp1: 0x7000, bp2: NoBreakpoint},
		{name: "jp nz nn", program: []byte{0xC2, 0x00, 0x70}, bp1: 0x7000, bp2: 0x8003},
		{name: "jr", program: []byte{0x18, 0x05}, bp1: 0x8007, bp2: NoBreakpoint},
		{name: "jr nz backward", program: []byte{0x20, 0xFC}, bp1: 0x7FFE, bp2: 0x8002},
		{name: "djnz", program: []byte{0x10, 0xFE}, bp1: 0x8000, bp2: 0x8002},
		{
			name: "jp (hl)", program: []byte{0xE9},
			setup: func(f *fakeCommander) { f.regs.HL = 0x4321 },
			bp1:  0x4321, bp2: NoBreakpoint,
		},
		{
			name: "jp (ix)", program: []byte{0xDD, 0xE9},
			setup: func(f *fakeCommander) { f.regs.IX = 0x5678 },
			bp1:  0x5678, bp2: NoBreakpoint,
		},
		{name: "halt", program: []byte{0x76}, bp1: 0x8001, bp2: NoBreakpoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, f, _ := newSession()
			f.regs.PC = 0x8000
			copy(f.mem[0x8000:], tt.program)
			if tt.setup != nil {
				tt.setup(f)
			}

			got := runStep(t, r, f, tt.over)
			assert.Equal(t, [2]int{tt.bp1, tt.bp2}, got)
		})
	}
}

// shortReadFake answers a two-byte read with a single byte and no
// error, as a misbehaving transport might.
type shortReadFake struct {
	*fakeCommander
}

func (f *shortReadFake) ReadMemory(addr uint16, size int) ([]byte, error) {
	if size == 2 {
		return []byte{0x34}, nil
	}
	return f.fakeCommander.ReadMemory(addr, size)
}

func TestStepShortReturnAddressRead(t *testing.T) {
	f := &shortReadFake{fakeCommander: newFake()}
	r := New(f, WithWarnf(func(string, ...interface{}) {}))
	f.remote = r
	f.regs.PC = 0x8000
	f.regs.SP = 0xFFF0
	f.mem[0x8000] = 0xC9 // RET

	_, err := r.StepInto(context.Background())
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "short read")
	assert.NotContains(t, err.Error(), "%!w")
	assert.Empty(t, f.continues, "the step is rejected before execution resumes")
}

func TestStepWrapsAtTopOfMemory(t *testing.T) {
	r, f, _ := newSession()
	f.regs.PC = 0xFFFF
	f.mem[0xFFFF] = 0x00 // NOP

	got := runStep(t, r, f, false)
	assert.Equal(t, [2]int{0x0000, NoBreakpoint}, got)
}

func TestStepResultReportsInstruction(t *testing.T) {
	r, f, _ := newSession()
	f.regs.PC = 0x8000
	copy(f.mem[0x8000:], []byte{0xCD, 0x00, 0x90})
	f.onContinue = func(bp1, bp2 int) (Break, bool) {
		f.regs.PC = uint16(bp1)
		return Break{}, true
	}

	res, err := r.StepInto(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "CALL 0x9000", res.Instruction)
	assert.Equal(t, "", res.Reason)
}

// scriptSteps makes every Continue apply the next post-step register
// state from the script.
func scriptSteps(f *fakeCommander, states []RegisterFile) {
	i := 0
	f.onContinue = func(bp1, bp2 int) (Break, bool) {
		f.regs = states[i]
		i++
		return Break{}, true
	}
}

func TestStepOutUnconditionalReturn(t *testing.T) {
	r, f, _ := newSession()
	// two instructions, then the subroutine's only exit
	copy(f.mem[0x8000:], []byte{0x00, 0x00, 0xC9})
	f.mem[0xFFF0], f.mem[0xFFF1] = 0x34, 0x12 // return address on the stack
	f.regs = RegisterFile{PC: 0x8000, SP: 0xFFF0}

	scriptSteps(f, []RegisterFile{
		{PC: 0x8001, SP: 0xFFF0},
		{PC: 0x8002, SP: 0xFFF0},
		{PC: 0x1234, SP: 0xFFF2},
	})

	b, err := r.StepOut(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "", b.Reason)
	// exactly one step per instruction between entry and the return
	assert.Len(t, f.continues, 3)

	regs, err := r.Registers()
	require.Nil(t, err)
	assert.Equal(t, uint16(0x1234), regs.PC)
}

func TestStepOutConditionalReturnNotTaken(t *testing.T) {
	r, f, _ := newSession()
	// RET NZ falls through (no pop), then NOP, then the real exit
	copy(f.mem[0x8000:], []byte{0xC0, 0x00, 0xC9})
	f.mem[0xFFF0], f.mem[0xFFF1] = 0x34, 0x12
	f.regs = RegisterFile{PC: 0x8000, SP: 0xFFF0}

	scriptSteps(f, []RegisterFile{
		{PC: 0x8001, SP: 0xFFF0}, // condition false, SP unchanged
		{PC: 0x8002, SP: 0xFFF0},
		{PC: 0x1234, SP: 0xFFF2},
	})

	b, err := r.StepOut(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "", b.Reason)
	assert.Len(t, f.continues, 3, "the untaken RET NZ must not end the loop")
}

func TestStepOutThroughNestedCall(t *testing.T) {
	r, f, _ := newSession()
	// CALL a one-instruction subroutine, then return
	copy(f.mem[0x8000:], []byte{0xCD, 0x10, 0x80}) // CALL 0x8010
	f.mem[0x8003] = 0xC9                           // RET (outer exit)
	f.mem[0x8010] = 0xC9                           // RET (inner exit)
	f.mem[0xFFEE], f.mem[0xFFEF] = 0x03, 0x80      // inner return address
	f.mem[0xFFF0], f.mem[0xFFF1] = 0x34, 0x12      // outer return address
	f.regs = RegisterFile{PC: 0x8000, SP: 0xFFF0}

	scriptSteps(f, []RegisterFile{
		{PC: 0x8010, SP: 0xFFEE}, // CALL pushed
		{PC: 0x8003, SP: 0xFFF0}, // inner RET: back to entry depth, not above it
		{PC: 0x1234, SP: 0xFFF2}, // outer RET: above entry depth
	})

	b, err := r.StepOut(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "", b.Reason)
	assert.Len(t, f.continues, 3)
}

func TestStepOutStopsOnBreakReason(t *testing.T) {
	r, f, _ := newSession()
	copy(f.mem[0x8000:], []byte{0x00, 0x00, 0xC9})
	f.regs = RegisterFile{PC: 0x8000, SP: 0xFFF0}

	f.onContinue = func(bp1, bp2 int) (Break, bool) {
		f.regs.PC = 0x8001
		return Break{Reason: "breakpoint 2 hit at 0x8001"}, true
	}

	b, err := r.StepOut(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "breakpoint 2 hit at 0x8001", b.Reason)
	assert.Len(t, f.continues, 1)
}

func TestStepOutCanceled(t *testing.T) {
	r, f, _ := newSession()
	// an endless loop: JR -2, SP never grows
	copy(f.mem[0x8000:], []byte{0x18, 0xFE})
	f.regs = RegisterFile{PC: 0x8000, SP: 0xFFF0}

	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	f.onContinue = func(bp1, bp2 int) (Break, bool) {
		steps++
		if steps == 5 {
			cancel()
			return Break{}, false // never resolved, the wait sees ctx
		}
		return Break{}, true
	}

	_, err := r.StepOut(ctx)
	assert.Equal(t, context.Canceled, err)
}
