package debug

import (
	"context"
	"fmt"
	"os"

	"github.com/hitzhangjie/zxdbg/pkg/dzrp"
	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:     "step",
	Short:   "execute one instruction, entering calls",
	Aliases: []string{"s"},
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupCtrlFlow,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTarget(); err != nil {
			return err
		}

		res, err := Target.StepInto(context.Background())
		if err != nil {
			return err
		}
		printStep(res)
		return nil
	},
}

func init() {
	debugRootCmd.AddCommand(stepCmd)
}

// printStep reports the executed instruction and where the target
// stopped.
func printStep(res *dzrp.StepResult) {
	regs, err := Target.Registers()
	if err != nil {
		fmt.Fprintf(os.Stderr, "get regs error: %v\n", err)
		return
	}
	fmt.Printf("%-16s current PC: 0x%04X\n", res.Instruction, regs.PC)
	if res.Reason != "" {
		fmt.Println(res.Reason)
	}
}
