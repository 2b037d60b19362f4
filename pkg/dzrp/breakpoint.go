package dzrp

import (
	"fmt"
	"sort"
)

// UnverifiedAddr marks a breakpoint the remote never accepted.
const UnverifiedAddr = -1

// Breakpoint is one address breakpoint as requested by the front end.
// ID is assigned by the remote; 0 means "not planted".
type Breakpoint struct {
	Addr       int // 0..0xFFFF, or UnverifiedAddr
	ID         uint16
	IsLogpoint bool
	Condition  string
	Log        string
}

// SetBreakpoint plants bp on the remote and records it in the registry.
// Logpoints and non-PC breakpoints (Addr < 0) are unsupported under
// DZRP: they are marked unverified, reported as a warning and never sent
// to the remote. A remote id of 0 means the breakpoint table is full; the
// breakpoint is then not recorded either. The returned id is 0 in every
// rejected case and callers must check it.
func (r *Remote) SetBreakpoint(bp *Breakpoint) (uint16, error) {
	if bp.IsLogpoint {
		bp.Addr = UnverifiedAddr
		r.warnf("logpoints are not supported by this remote")
		return 0, nil
	}
	if bp.Addr < 0 {
		bp.Addr = UnverifiedAddr
		r.warnf("only PC breakpoints are supported by this remote")
		return 0, nil
	}

	id, err := r.cmd.AddBreakpoint(uint16(bp.Addr))
	if err != nil {
		return 0, fmt.Errorf("add breakpoint at 0x%04X: %w", bp.Addr, err)
	}
	if id == 0 {
		// remote breakpoint table exhausted
		return 0, nil
	}

	bp.ID = id
	r.breakpoints[id] = bp
	return id, nil
}

// RemoveBreakpoint removes bp from the remote and the registry. Removing
// a breakpoint that was never registered is a caller bug and fails with
// ErrBreakpointNotExisted.
func (r *Remote) RemoveBreakpoint(bp *Breakpoint) error {
	registered, ok := r.breakpoints[bp.ID]
	if !ok || registered != bp {
		return ErrBreakpointNotExisted
	}
	if err := r.cmd.RemoveBreakpoint(bp.ID); err != nil {
		return fmt.Errorf("remove breakpoint %d: %w", bp.ID, err)
	}
	delete(r.breakpoints, bp.ID)
	return nil
}

// Breakpoints returns the registered breakpoints ordered by remote id.
func (r *Remote) Breakpoints() []*Breakpoint {
	bps := make([]*Breakpoint, 0, len(r.breakpoints))
	for _, bp := range r.breakpoints {
		bps = append(bps, bp)
	}
	sort.Slice(bps, func(i, j int) bool { return bps[i].ID < bps[j].ID })
	return bps
}

// BreakpointByID looks up a registered breakpoint by its remote id.
func (r *Remote) BreakpointByID(id uint16) (*Breakpoint, bool) {
	bp, ok := r.breakpoints[id]
	return bp, ok
}
