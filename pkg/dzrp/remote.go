// Package dzrp is the orchestration layer of a DZRP remote-debug
// session: it turns the abstract command set a transport implements
// into the run/pause/step, breakpoint and image-loading operations a
// debugger front end needs, and keeps the register cache and the single
// outstanding continuation coherent while doing so.
package dzrp

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/atomic"
)

// WarnFunc receives non-fatal diagnostics (unsupported feature
// fallbacks). It replaces an implicit global warning channel so the
// warnings are observable by whoever constructed the session.
type WarnFunc func(format string, args ...interface{})

// Remote is one debug session against a remote Z80 target. All commands
// are issued one at a time in program order; the only concurrency the
// type deals with is the transport delivering break notifications.
type Remote struct {
	cmd Commander

	regs      RegisterFile
	regsValid *atomic.Bool

	breakpoints map[uint16]*Breakpoint

	running *atomic.Bool
	mu      sync.Mutex // guards pending
	pending chan Break

	warnf WarnFunc
}

var _ BreakHandler = (*Remote)(nil)

// Option configures a Remote.
type Option func(*Remote)

// WithWarnf routes non-fatal warnings to fn instead of stderr.
func WithWarnf(fn WarnFunc) Option {
	return func(r *Remote) { r.warnf = fn }
}

// New creates a session speaking through cmd. The transport must
// deliver break notifications to the returned Remote via HandleBreak.
func New(cmd Commander, opts ...Option) *Remote {
	r := &Remote{
		cmd:         cmd,
		regsValid:   atomic.NewBool(false),
		breakpoints: map[uint16]*Breakpoint{},
		running:     atomic.NewBool(false),
		warnf: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config fetches the remote's identity and protocol version.
func (r *Remote) Config() (*Config, error) {
	return r.cmd.GetConfig()
}

// ReadMemory reads size bytes of target memory starting at addr.
func (r *Remote) ReadMemory(addr uint16, size int) ([]byte, error) {
	return r.cmd.ReadMemory(addr, size)
}

// WriteMemory writes data into target memory starting at addr.
func (r *Remote) WriteMemory(addr uint16, data []byte) error {
	return r.cmd.WriteMemory(addr, data)
}

// HandleBreak resolves the outstanding continue/step. The transport
// calls it exactly once per outstanding request; a notification with no
// request pending is dropped with a warning.
func (r *Remote) HandleBreak(b Break) {
	r.mu.Lock()
	ch := r.pending
	r.pending = nil
	r.mu.Unlock()

	if ch == nil {
		r.warnf("break notification with no request pending: %q", b.Reason)
		return
	}
	ch <- b
}
