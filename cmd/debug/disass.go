package debug

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hitzhangjie/zxdbg/pkg/z80"
	"github.com/spf13/cobra"
)

var disassCmd = &cobra.Command{
	Use:     "disass [address]",
	Short:   "disassemble from an address (default PC)",
	Aliases: []string{"dis", "disassemble"},
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupInfo,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTarget(); err != nil {
			return err
		}
		max, _ := cmd.Flags().GetInt("max")

		var addr uint16
		if len(args) == 1 {
			a, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			addr = a
		} else {
			regs, err := Target.Registers()
			if err != nil {
				return err
			}
			addr = regs.PC
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 8, ' ', 0)
		for i := 0; i < max; i++ {
			buf, err := Target.ReadMemory(addr, z80.MaxInstructionLen)
			if err != nil {
				return fmt.Errorf("read memory at 0x%04X: %v", addr, err)
			}
			inst := z80.Decode(buf, addr)
			fmt.Fprintf(tw, "0x%04X:\t% x\t%s\n", addr, buf[:inst.Length], inst.Mnemonic)
			addr += uint16(inst.Length)
		}
		return tw.Flush()
	},
}

func init() {
	debugRootCmd.AddCommand(disassCmd)

	disassCmd.Flags().IntP("max", "n", 10, "number of instructions to disassemble")
}
