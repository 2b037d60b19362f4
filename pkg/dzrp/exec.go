package dzrp

import (
	"context"
	"fmt"
	"strings"

	"github.com/hitzhangjie/zxdbg/pkg/z80"
)

// StepResult is the outcome of one step-into/step-over: the mnemonic of
// the instruction that was executed and the break that ended the step.
// An empty Break.Reason means the step completed normally (a temporary
// breakpoint was hit).
type StepResult struct {
	Instruction string
	Break
}

// start claims the single continuation slot. Starting a second
// continue/step while one is outstanding is a caller bug and fails with
// ErrAlreadyRunning rather than silently orphaning the first caller.
func (r *Remote) start() (chan Break, error) {
	if !r.running.CAS(false, true) {
		return nil, ErrAlreadyRunning
	}
	ch := make(chan Break, 1)
	r.mu.Lock()
	r.pending = ch
	r.mu.Unlock()
	return ch, nil
}

// abort releases the slot after a command failed to issue.
func (r *Remote) abort() {
	r.mu.Lock()
	r.pending = nil
	r.mu.Unlock()
	r.running.Store(false)
}

// wait blocks until the transport resolves the slot or ctx is done.
// A canceled wait drops the slot: a late notification is then discarded
// by HandleBreak.
func (r *Remote) wait(ctx context.Context, ch chan Break) (Break, error) {
	select {
	case b := <-ch:
		r.running.Store(false)
		return b, nil
	case <-ctx.Done():
		r.abort()
		return Break{}, ctx.Err()
	}
}

// Continue resumes the target until a breakpoint or other stop
// condition is reported. The register cache is invalid from the moment
// execution resumes.
func (r *Remote) Continue(ctx context.Context) (Break, error) {
	ch, err := r.start()
	if err != nil {
		return Break{}, err
	}
	r.InvalidateRegisters()
	if err := r.cmd.Continue(NoBreakpoint, NoBreakpoint); err != nil {
		r.abort()
		return Break{}, fmt.Errorf("continue: %w", err)
	}
	return r.wait(ctx, ch)
}

// Pause asks a running target to stop. It does not resolve the pending
// continuation itself; the stop arrives as the break notification of
// the outstanding continue/step.
func (r *Remote) Pause() error {
	return r.cmd.Pause()
}

// StepInto executes one instruction, following calls into the callee.
func (r *Remote) StepInto(ctx context.Context) (*StepResult, error) {
	return r.step(ctx, false)
}

// StepOver executes one instruction, skipping over the body of calls.
func (r *Remote) StepOver(ctx context.Context) (*StepResult, error) {
	return r.step(ctx, true)
}

func (r *Remote) step(ctx context.Context, over bool) (*StepResult, error) {
	if err := r.ensureRegisters(); err != nil {
		return nil, err
	}
	pc := r.regs.PC

	buf, err := r.cmd.ReadMemory(pc, z80.MaxInstructionLen)
	if err != nil {
		return nil, fmt.Errorf("read instruction at 0x%04X: %w", pc, err)
	}
	inst := z80.Decode(buf, pc)

	bp1, bp2, err := r.stepBreakpoints(inst, pc, over)
	if err != nil {
		return nil, err
	}

	ch, err := r.start()
	if err != nil {
		return nil, err
	}
	r.InvalidateRegisters()
	if err := r.cmd.Continue(bp1, bp2); err != nil {
		r.abort()
		return nil, fmt.Errorf("step: %w", err)
	}

	b, err := r.wait(ctx, ch)
	if err != nil {
		return nil, err
	}
	return &StepResult{Instruction: inst.Mnemonic, Break: b}, nil
}

// stepBreakpoints places up to two temporary breakpoints for stepping
// over the instruction at pc. Conditional control flow gets one
// breakpoint per outcome; everything else gets one after the
// instruction. Step-over differs from step-into only for calls, where
// the callee entry is not a stop address.
func (r *Remote) stepBreakpoints(inst z80.Instruction, pc uint16, over bool) (int, int, error) {
	after := int(pc + uint16(inst.Length)) // uint16 arithmetic wraps at 0xFFFF

	switch inst.Kind {
	case z80.KindCall, z80.KindRst:
		if over {
			return after, NoBreakpoint, nil
		}
		if inst.Conditional {
			return int(inst.Target), after, nil
		}
		return int(inst.Target), NoBreakpoint, nil

	case z80.KindRet:
		buf, err := r.cmd.ReadMemory(r.regs.SP, 2)
		if err != nil {
			return 0, 0, fmt.Errorf("read return address at 0x%04X: %w", r.regs.SP, err)
		}
		if len(buf) < 2 {
			return 0, 0, fmt.Errorf("read return address at 0x%04X: short read, %d bytes", r.regs.SP, len(buf))
		}
		retAddr := int(uint16(buf[1])<<8 | uint16(buf[0]))
		if inst.Conditional {
			return retAddr, after, nil
		}
		return retAddr, NoBreakpoint, nil

	case z80.KindJump:
		if inst.Conditional {
			return int(inst.Target), after, nil
		}
		return int(inst.Target), NoBreakpoint, nil

	case z80.KindJumpIndirect:
		var target uint16
		switch inst.Indirect {
		case "IX":
			target = r.regs.IX
		case "IY":
			target = r.regs.IY
		default:
			target = r.regs.HL
		}
		return int(target), NoBreakpoint, nil
	}

	return after, NoBreakpoint, nil
}

// StepOut steps into instructions until the current subroutine returns.
//
// After each step: a non-empty break reason ends the loop immediately (a
// real breakpoint or stop condition, not step-out completion). Otherwise
// the loop ends once the stack pointer has grown past both the value at
// entry and the value just before the step, and the executed instruction
// was a return. The double comparison skips conditional returns whose
// condition was false: no pop happened, so SP did not grow.
//
// The loop is unbounded; ctx is the caller's cancellation and iteration
// bound.
func (r *Remote) StepOut(ctx context.Context) (Break, error) {
	if err := r.ensureRegisters(); err != nil {
		return Break{}, err
	}
	startSP := r.regs.SP
	prevSP := startSP

	for {
		res, err := r.StepInto(ctx)
		if err != nil {
			return Break{}, err
		}
		if res.Reason != "" {
			return res.Break, nil
		}

		if err := r.ensureRegisters(); err != nil {
			return Break{}, err
		}
		currSP := r.regs.SP

		if currSP > startSP && currSP > prevSP && isRet(res.Instruction) {
			return res.Break, nil
		}
		prevSP = currSP
	}
}

func isRet(mnemonic string) bool {
	return strings.HasPrefix(strings.ToUpper(mnemonic), "RET")
}
