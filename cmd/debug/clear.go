package debug

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear <breakpoint no.>",
	Short: "remove the breakpoint with the given id",
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupBreakpoints,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := cmd.Flags().GetUint16("n")
		if err != nil {
			return err
		}
		if err := requireTarget(); err != nil {
			return err
		}

		bp, ok := Target.BreakpointByID(id)
		if !ok {
			return fmt.Errorf("no breakpoint with id %d", id)
		}
		if err := Target.RemoveBreakpoint(bp); err != nil {
			return err
		}
		fmt.Printf("breakpoint[%d] removed\n", id)
		return nil
	},
}

func init() {
	debugRootCmd.AddCommand(clearCmd)

	clearCmd.Flags().Uint16P("n", "n", 1, "breakpoint id")
}
