package debug

import (
	"errors"

	"github.com/hitzhangjie/zxdbg/pkg/dzrp"
)

var (
	// Target is the debug session's remote, set by the launching
	// command before the session starts.
	Target *dzrp.Remote
)

var errNoTarget = errors.New("no target attached, start with 'zxdbg emu' or 'zxdbg connect'")

func requireTarget() error {
	if Target == nil {
		return errNoTarget
	}
	return nil
}

// PauseTarget asks the current target to break. It reports false when
// no session is active so the caller can fall back to exiting.
func PauseTarget() bool {
	if Target == nil {
		return false
	}
	_ = Target.Pause()
	return true
}
