package debug

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var regsCmd = &cobra.Command{
	Use:     "regs",
	Short:   "print the register file",
	Aliases: []string{"r", "registers"},
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupInfo,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTarget(); err != nil {
			return err
		}

		regs, err := Target.Registers()
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 4, ' ', 0)
		fmt.Fprintf(tw, "PC: 0x%04X\tSP: 0x%04X\n", regs.PC, regs.SP)
		fmt.Fprintf(tw, "AF: 0x%04X\tBC: 0x%04X\tDE: 0x%04X\tHL: 0x%04X\n",
			regs.AF, regs.BC, regs.DE, regs.HL)
		fmt.Fprintf(tw, "IX: 0x%04X\tIY: 0x%04X\n", regs.IX, regs.IY)
		fmt.Fprintf(tw, "AF': 0x%04X\tBC': 0x%04X\tDE': 0x%04X\tHL': 0x%04X\n",
			regs.AF2, regs.BC2, regs.DE2, regs.HL2)
		fmt.Fprintf(tw, "R: 0x%02X\tI: 0x%02X\n", regs.R, regs.I)
		return tw.Flush()
	},
}

func init() {
	debugRootCmd.AddCommand(regsCmd)
}
