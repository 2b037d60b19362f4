package debug

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "load a .sna or .nex snapshot into the target",
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupImages,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("usage: load <file>")
		}
		if err := requireTarget(); err != nil {
			return err
		}

		if err := Target.LoadBin(args[0]); err != nil {
			return err
		}

		regs, err := Target.Registers()
		if err != nil {
			return err
		}
		fmt.Printf("loaded %s, PC: 0x%04X SP: 0x%04X\n", args[0], regs.PC, regs.SP)
		return nil
	},
}

func init() {
	debugRootCmd.AddCommand(loadCmd)
}
