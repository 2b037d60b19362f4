package debug

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var examineCmd = &cobra.Command{
	Use:     "x <addr>",
	Short:   "examine memory at an address",
	Aliases: []string{"examine"},
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupInfo,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("usage: x [-n length] <addr>")
		}
		if err := requireTarget(); err != nil {
			return err
		}

		length, _ := cmd.Flags().GetInt("n")
		addr, err := parseAddress(args[0])
		if err != nil {
			return err
		}

		buf, err := Target.ReadMemory(addr, length)
		if err != nil {
			return err
		}

		for i := 0; i < len(buf); i += 16 {
			end := i + 16
			if end > len(buf) {
				end = len(buf)
			}
			fmt.Printf("0x%04X: % x\n", addr+uint16(i), buf[i:end])
		}
		return nil
	},
}

func init() {
	debugRootCmd.AddCommand(examineCmd)

	examineCmd.Flags().IntP("n", "n", 16, "number of bytes to read")
}
