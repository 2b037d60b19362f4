package debug

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearallCmd = &cobra.Command{
	Use:   "clearall",
	Short: "remove all breakpoints",
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupBreakpoints,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTarget(); err != nil {
			return err
		}

		for _, bp := range Target.Breakpoints() {
			if err := Target.RemoveBreakpoint(bp); err != nil {
				return fmt.Errorf("remove breakpoint %d: %v", bp.ID, err)
			}
		}
		fmt.Println("all breakpoints removed")
		return nil
	},
}

func init() {
	debugRootCmd.AddCommand(clearallCmd)
}
