package debug

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var continueCmd = &cobra.Command{
	Use:     "continue",
	Short:   "run to the next breakpoint",
	Aliases: []string{"c"},
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupCtrlFlow,
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if err := requireTarget(); err != nil {
			return err
		}

		defer func() {
			if err != nil {
				return
			}
			// display current pc
			regs, err := Target.Registers()
			if err != nil {
				fmt.Fprintf(os.Stderr, "get regs error: %v\n", err)
				return
			}
			fmt.Printf("stopped, current PC: 0x%04X\n", regs.PC)
		}()

		b, err := Target.Continue(context.Background())
		if err != nil {
			return err
		}
		if b.Reason != "" {
			fmt.Println(b.Reason)
		}
		return nil
	},
}

func init() {
	debugRootCmd.AddCommand(continueCmd)
}
