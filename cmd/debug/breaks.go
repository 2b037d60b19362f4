package debug

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var breaksCmd = &cobra.Command{
	Use:     "breaks",
	Short:   "list all breakpoints",
	Aliases: []string{"bs", "breakpoints"},
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupBreakpoints,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTarget(); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 4, ' ', 0)
		for _, bp := range Target.Breakpoints() {
			fmt.Fprintf(tw, "breakpoint[%d]\taddr: 0x%04X\n", bp.ID, bp.Addr)
		}
		return tw.Flush()
	},
}

func init() {
	debugRootCmd.AddCommand(breaksCmd)
}
