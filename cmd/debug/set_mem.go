package debug

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var setMemCmd = &cobra.Command{
	Use:   "setmem <addr> <value>",
	Short: "set one byte of memory",
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupInfo,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("usage: setmem <addr> <value>")
		}
		if err := requireTarget(); err != nil {
			return err
		}

		addr, err := parseAddress(args[0])
		if err != nil {
			return err
		}

		value, err := strconv.ParseUint(args[1], 0, 8)
		if err != nil {
			return fmt.Errorf("invalid value format: %s", args[1])
		}

		if err := Target.WriteMemory(addr, []byte{byte(value)}); err != nil {
			return fmt.Errorf("write memory at 0x%04X: %v", addr, err)
		}
		return nil
	},
}

func init() {
	debugRootCmd.AddCommand(setMemCmd)
}
