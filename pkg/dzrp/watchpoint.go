package dzrp

import "fmt"

// Watchpoint halts on memory access to [Addr, Addr+Size), independent
// of PC breakpoints.
type Watchpoint struct {
	Addr   uint16
	Size   uint16
	Access string // "r", "w" or "rw"
}

// AssertBreakpoint halts when its condition evaluates false at Addr.
type AssertBreakpoint struct {
	Addr      uint16
	Condition string
}

// Logpoint logs Text when PC reaches Addr instead of halting. Logpoints
// are grouped so whole groups can be switched together.
type Logpoint struct {
	Group string
	Addr  uint16
	Text  string
}

// The watch/assert/log features are optional per transport: a transport
// advertises one by implementing the matching capability interface on
// its Commander. The session methods below fail with ErrNotWired when
// the capability is absent, so "transport can't do this" is told apart
// from ordinary runtime failures without the session special-casing
// every transport.

type WatchpointCommander interface {
	SetWatchpoints(wps []Watchpoint) error
	EnableWatchpoints(enable bool) error
}

type AssertCommander interface {
	SetAssertBreakpoints(abps []AssertBreakpoint) error
	EnableAssertBreakpoints(enable bool) error
}

type LogpointCommander interface {
	SetLogpoints(lps []Logpoint) error
	// EnableLogpoints switches one group, or all groups when group is
	// empty.
	EnableLogpoints(group string, enable bool) error
}

// SetWatchpoints replaces the active watchpoint set.
func (r *Remote) SetWatchpoints(wps []Watchpoint) error {
	wc, ok := r.cmd.(WatchpointCommander)
	if !ok {
		return fmt.Errorf("watchpoints: %w", ErrNotWired)
	}
	return wc.SetWatchpoints(wps)
}

// EnableWatchpoints switches all watchpoints on or off.
func (r *Remote) EnableWatchpoints(enable bool) error {
	wc, ok := r.cmd.(WatchpointCommander)
	if !ok {
		return fmt.Errorf("watchpoints: %w", ErrNotWired)
	}
	return wc.EnableWatchpoints(enable)
}

// SetAssertBreakpoints replaces the active assert-breakpoint set.
func (r *Remote) SetAssertBreakpoints(abps []AssertBreakpoint) error {
	ac, ok := r.cmd.(AssertCommander)
	if !ok {
		return fmt.Errorf("assert breakpoints: %w", ErrNotWired)
	}
	return ac.SetAssertBreakpoints(abps)
}

// EnableAssertBreakpoints switches all assert breakpoints on or off.
func (r *Remote) EnableAssertBreakpoints(enable bool) error {
	ac, ok := r.cmd.(AssertCommander)
	if !ok {
		return fmt.Errorf("assert breakpoints: %w", ErrNotWired)
	}
	return ac.EnableAssertBreakpoints(enable)
}

// SetLogpoints replaces the active logpoint set.
func (r *Remote) SetLogpoints(lps []Logpoint) error {
	lc, ok := r.cmd.(LogpointCommander)
	if !ok {
		return fmt.Errorf("logpoints: %w", ErrNotWired)
	}
	return lc.SetLogpoints(lps)
}

// EnableLogpoints switches one logpoint group, or all groups when group
// is empty.
func (r *Remote) EnableLogpoints(group string, enable bool) error {
	lc, ok := r.cmd.(LogpointCommander)
	if !ok {
		return fmt.Errorf("logpoints: %w", ErrNotWired)
	}
	return lc.EnableLogpoints(group, enable)
}
