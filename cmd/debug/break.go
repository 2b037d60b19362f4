package debug

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hitzhangjie/zxdbg/pkg/dzrp"
	"github.com/spf13/cobra"
)

var breakCmd = &cobra.Command{
	Use:   "break <address>",
	Short: "add a breakpoint at an address",
	Long: `add a breakpoint at an instruction address, decimal or 0x-prefixed
hexadecimal. The remote assigns the breakpoint id.`,
	Aliases: []string{"b", "breakpoint"},
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupBreakpoints,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("usage: break <address>")
		}
		if err := requireTarget(); err != nil {
			return err
		}

		addr, err := parseAddress(args[0])
		if err != nil {
			return err
		}

		bp := &dzrp.Breakpoint{Addr: int(addr)}
		id, err := Target.SetBreakpoint(bp)
		if err != nil {
			return err
		}
		if id == 0 {
			fmt.Printf("breakpoint not set at 0x%04X: remote table full or unsupported\n", addr)
			return nil
		}
		fmt.Printf("breakpoint[%d] set at 0x%04X\n", id, addr)
		return nil
	},
}

func init() {
	debugRootCmd.AddCommand(breakCmd)
}

func parseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %v", s, err)
	}
	return uint16(v), nil
}
