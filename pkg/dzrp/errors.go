package dzrp

import "errors"

var (
	// ErrNotWired reports a command or capability that the concrete
	// transport never implemented. It marks a wiring bug, not a runtime
	// condition, and is never retried.
	ErrNotWired = errors.New("command not wired to a transport")

	// ErrAlreadyRunning reports a continue/step started while another
	// one is still outstanding. The continuation slot holds one entry.
	ErrAlreadyRunning = errors.New("target already running")

	// ErrBreakpointNotExisted reports removal of a breakpoint that is
	// not in the registry, a caller bug.
	ErrBreakpointNotExisted = errors.New("breakpoint not existed")
)
