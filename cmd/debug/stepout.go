package debug

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var stepoutCmd = &cobra.Command{
	Use:     "stepout",
	Short:   "run until the current subroutine returns",
	Aliases: []string{"so", "finish"},
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupCtrlFlow,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTarget(); err != nil {
			return err
		}

		// Ctrl-C pauses the target, which ends the loop through the
		// pending step's break notification.
		b, err := Target.StepOut(context.Background())
		if err != nil {
			return err
		}
		if b.Reason != "" {
			fmt.Println(b.Reason)
		}

		regs, err := Target.Registers()
		if err != nil {
			return err
		}
		fmt.Printf("returned, current PC: 0x%04X\n", regs.PC)
		return nil
	},
}

func init() {
	debugRootCmd.AddCommand(stepoutCmd)
}
