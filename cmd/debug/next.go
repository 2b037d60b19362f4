package debug

import (
	"context"

	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:     "next",
	Short:   "execute one instruction, skipping over calls",
	Aliases: []string{"n"},
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupCtrlFlow,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTarget(); err != nil {
			return err
		}

		res, err := Target.StepOver(context.Background())
		if err != nil {
			return err
		}
		printStep(res)
		return nil
	},
}

func init() {
	debugRootCmd.AddCommand(nextCmd)
}
