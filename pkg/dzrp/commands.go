package dzrp

import "fmt"

// NoBreakpoint marks an unused temporary-breakpoint argument to Continue.
const NoBreakpoint = -1

// HalfBankSize is the transfer unit of WriteBank: half of a 16KB memory
// bank, addressed as 2*bank and 2*bank+1.
const HalfBankSize = 0x2000

// Config is the remote's answer to GetConfig.
type Config struct {
	DZRPVersion string
	Program     string
	MachineType byte
}

// Break is the payload of the asynchronous break notification that
// resolves an outstanding continue or step. An empty Reason means the
// target stopped at a temporary (stepping) breakpoint.
type Break struct {
	Reason  string
	TStates uint32
	CPUFreq uint32
}

// Commander is the abstract DZRP command set a concrete transport
// (socket, serial, in-process emulator) implements. Every call is a
// plain request/response pair; the asynchronous break notification is
// delivered separately through BreakHandler.
type Commander interface {
	// GetConfig asks the remote for its identity and protocol version.
	GetConfig() (*Config, error)

	// GetRegisters fetches the complete register file.
	GetRegisters() (*RegisterFile, error)

	// SetRegister writes one register. The remote is the source of
	// truth: the stored value may differ from the one sent.
	SetRegister(reg Register, value uint16) error

	// Continue resumes execution. bp1 and bp2 are temporary breakpoint
	// addresses used for stepping, NoBreakpoint when unused. The call
	// returns once the request is accepted; the stop arrives later as a
	// break notification.
	Continue(bp1, bp2 int) error

	// Pause asks a running target to stop. The stop is reported through
	// the pending break notification, not through this call.
	Pause() error

	// AddBreakpoint plants a PC breakpoint and returns its remote id.
	// Id 0 means the remote has no free breakpoint slot.
	AddBreakpoint(addr uint16) (uint16, error)

	// RemoveBreakpoint removes the breakpoint with the given remote id.
	RemoveBreakpoint(id uint16) error

	// ReadMemory reads size bytes starting at addr.
	ReadMemory(addr uint16, size int) ([]byte, error)

	// WriteMemory writes data starting at addr.
	WriteMemory(addr uint16, data []byte) error

	// WriteBank transfers one 8KB half bank; halfBank indexes the
	// target's banking scheme as 2*bank / 2*bank+1.
	WriteBank(halfBank int, data []byte) error
}

// BreakHandler receives the break notification a transport delivers
// exactly once per outstanding continue/step. *Remote implements it.
type BreakHandler interface {
	HandleBreak(b Break)
}

// UnimplementedCommander fails every command with ErrNotWired. Embed it
// in a transport to inherit the must-override contract for commands the
// transport does not (yet) speak.
type UnimplementedCommander struct{}

var _ Commander = UnimplementedCommander{}

func (UnimplementedCommander) GetConfig() (*Config, error) {
	return nil, fmt.Errorf("GetConfig: %w", ErrNotWired)
}

func (UnimplementedCommander) GetRegisters() (*RegisterFile, error) {
	return nil, fmt.Errorf("GetRegisters: %w", ErrNotWired)
}

func (UnimplementedCommander) SetRegister(reg Register, value uint16) error {
	return fmt.Errorf("SetRegister: %w", ErrNotWired)
}

func (UnimplementedCommander) Continue(bp1, bp2 int) error {
	return fmt.Errorf("Continue: %w", ErrNotWired)
}

func (UnimplementedCommander) Pause() error {
	return fmt.Errorf("Pause: %w", ErrNotWired)
}

func (UnimplementedCommander) AddBreakpoint(addr uint16) (uint16, error) {
	return 0, fmt.Errorf("AddBreakpoint: %w", ErrNotWired)
}

func (UnimplementedCommander) RemoveBreakpoint(id uint16) error {
	return fmt.Errorf("RemoveBreakpoint: %w", ErrNotWired)
}

func (UnimplementedCommander) ReadMemory(addr uint16, size int) ([]byte, error) {
	return nil, fmt.Errorf("ReadMemory: %w", ErrNotWired)
}

func (UnimplementedCommander) WriteMemory(addr uint16, data []byte) error {
	return fmt.Errorf("WriteMemory: %w", ErrNotWired)
}

func (UnimplementedCommander) WriteBank(halfBank int, data []byte) error {
	return fmt.Errorf("WriteBank: %w", ErrNotWired)
}
