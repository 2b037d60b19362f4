package debug

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hitzhangjie/zxdbg/pkg/dzrp"
	"github.com/spf13/cobra"
)

var setRegCmd = &cobra.Command{
	Use:   "setreg <reg> <value>",
	Short: "set a register value",
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupInfo,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("usage: setreg <reg> <value>")
		}
		if err := requireTarget(); err != nil {
			return err
		}

		reg, err := dzrp.ParseRegister(args[0])
		if err != nil {
			return err
		}

		value, err := strconv.ParseUint(args[1], 0, 16)
		if err != nil {
			return fmt.Errorf("invalid value format: %s", args[1])
		}

		// the remote confirms the stored value, which may differ
		confirmed, err := Target.SetRegisterValue(reg, uint16(value))
		if err != nil {
			return err
		}
		fmt.Printf("%s = 0x%04X\n", reg, confirmed)
		return nil
	},
}

func init() {
	debugRootCmd.AddCommand(setRegCmd)
}
